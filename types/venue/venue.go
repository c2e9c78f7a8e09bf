package venue

import (
	"fmt"
	"strings"

	venueModel "venue-booking/models/venue"
	bookingTypes "venue-booking/types/booking"
)

// VenueUpsertRequest represents the admin payload for creating or editing a venue.
type VenueUpsertRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=255"`
	Description string   `json:"description" validate:"omitempty"`
	Capacity    int      `json:"capacity" validate:"required,gt=0"`
	Location    string   `json:"location" validate:"required,min=1,max=255"`
	CostAmount  float64  `json:"cost_amount" validate:"gte=0"`
	IsActive    *bool    `json:"is_active" validate:"omitempty"`
	Amenities   []string `json:"amenities" validate:"omitempty"`
}

func (v VenueUpsertRequest) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if v.Capacity <= 0 {
		return fmt.Errorf("capacity must be greater than zero")
	}
	if strings.TrimSpace(v.Location) == "" {
		return fmt.Errorf("location is required")
	}
	if v.CostAmount < 0 {
		return fmt.Errorf("cost_amount must be non-negative")
	}
	for _, a := range v.Amenities {
		if !venueModel.ValidAmenity(a) {
			return fmt.Errorf("unknown amenity: %s", a)
		}
	}
	return nil
}

// SearchRequest represents the availability search criteria: a date/time
// window, a minimum capacity, and a required amenity set.
type SearchRequest struct {
	Date              string   `json:"date" validate:"required"`       // YYYY-MM-DD
	StartTime         string   `json:"start_time" validate:"required"` // HH:MM
	EndTime           string   `json:"end_time" validate:"required"`   // HH:MM
	RequiredCapacity  int      `json:"required_capacity" validate:"required,gt=0"`
	RequiredAmenities []string `json:"required_amenities" validate:"omitempty"`
}

func (s SearchRequest) Validate() error {
	if _, err := bookingTypes.ParseDate(s.Date); err != nil {
		return err
	}
	start, err := bookingTypes.ParseClock(s.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := bookingTypes.ParseClock(s.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("start_time must be before end_time")
	}
	if s.RequiredCapacity <= 0 {
		return fmt.Errorf("required_capacity must be greater than zero")
	}
	for _, a := range s.RequiredAmenities {
		if !venueModel.ValidAmenity(a) {
			return fmt.Errorf("unknown amenity: %s", a)
		}
	}
	return nil
}
