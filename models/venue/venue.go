package venue

import (
	"time"

	"venue-booking/models/user"
)

// Amenity vocabulary. Venue amenity sets and booking requirements are
// restricted to these values.
const (
	AmenityProjector       = "projector"
	AmenitySoundSystem     = "sound_system"
	AmenityAirConditioning = "air_conditioning"
	AmenityWifi            = "wifi"
	AmenityWhiteboard      = "whiteboard"
	AmenityStage           = "stage"
	AmenityParking         = "parking"
	AmenityCatering        = "catering"
)

// Venue represents a bookable physical space.
type Venue struct {
	ID          uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Capacity    int              `gorm:"not null" json:"capacity"`
	Location    string           `gorm:"type:varchar(255);not null" json:"location"`
	CostAmount  float64          `gorm:"not null;default:0" json:"cost_amount"`
	IsActive    bool             `gorm:"not null;default:true" json:"is_active"`
	Amenities   user.StringSlice `gorm:"type:json" json:"amenities"`
	ImagePath   *string          `gorm:"type:varchar(500)" json:"image_path,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// AllAmenities returns the fixed amenity vocabulary.
func AllAmenities() []string {
	return []string{
		AmenityProjector,
		AmenitySoundSystem,
		AmenityAirConditioning,
		AmenityWifi,
		AmenityWhiteboard,
		AmenityStage,
		AmenityParking,
		AmenityCatering,
	}
}

// ValidAmenity reports whether the given amenity is part of the vocabulary.
func ValidAmenity(a string) bool {
	for _, known := range AllAmenities() {
		if a == known {
			return true
		}
	}
	return false
}

// HasAmenities reports whether the venue's amenity set covers all required ones.
func (v *Venue) HasAmenities(required []string) bool {
	have := make(map[string]bool, len(v.Amenities))
	for _, a := range v.Amenities {
		have[a] = true
	}
	for _, a := range required {
		if !have[a] {
			return false
		}
	}
	return true
}
