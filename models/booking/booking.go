package booking

import (
	"time"

	"venue-booking/models/user"
	"venue-booking/models/venue"
)

// Booking represents one request to use a venue for a time window.
// StartMinute/EndMinute are minutes since midnight bounding the half-open
// interval [StartMinute, EndMinute) on BookingDate.
type Booking struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingCode string `gorm:"type:varchar(36);not null;unique" json:"booking_code"`

	// Foreign key for users relationship
	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	// Foreign key for venues relationship
	VenueID uint        `gorm:"not null;index" json:"venue_id"`
	Venue   venue.Venue `gorm:"foreignKey:VenueID;constraint:OnDelete:CASCADE" json:"venue"`

	BookingDate       time.Time        `gorm:"type:date;not null;index" json:"booking_date"`
	StartMinute       int              `gorm:"not null" json:"start_minute"`
	EndMinute         int              `gorm:"not null" json:"end_minute"`
	RequiredCapacity  int              `gorm:"not null" json:"required_capacity"`
	RequiredAmenities user.StringSlice `gorm:"type:json" json:"required_amenities"`
	Purpose           string           `gorm:"type:text;not null" json:"purpose"`
	EventDetails      *string          `gorm:"type:text" json:"event_details,omitempty"`

	Status Status `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`

	// Set at approval time. ControlNumber is present only when ApprovedCost > 0.
	ApprovedCost  *float64 `gorm:"" json:"approved_cost,omitempty"`
	ControlNumber *string  `gorm:"type:varchar(100)" json:"control_number,omitempty"`

	RejectionReason    *string `gorm:"type:text" json:"rejection_reason,omitempty"`
	CancellationReason *string `gorm:"type:text" json:"cancellation_reason,omitempty"`

	// Payment evidence uploaded by the requester
	EvidencePath     *string `gorm:"type:varchar(500)" json:"evidence_path,omitempty"`
	EvidenceMimeType *string `gorm:"type:varchar(100)" json:"evidence_mime_type,omitempty"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string     `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// HasEvidence reports whether payment evidence has already been attached.
func (b *Booking) HasEvidence() bool {
	return b.EvidencePath != nil && *b.EvidencePath != ""
}

// RequiresPayment reports whether the booking was approved with a nonzero cost.
func (b *Booking) RequiresPayment() bool {
	return b.ApprovedCost != nil && *b.ApprovedCost > 0
}

// Overlaps reports whether the booking's window overlaps [startMinute, endMinute)
// on the given date. Bookings in a rejected or cancelled state never conflict.
func (b *Booking) Overlaps(date time.Time, startMinute, endMinute int) bool {
	if b.Status == StatusRejected || b.Status == StatusCancelled {
		return false
	}
	y1, m1, d1 := b.BookingDate.Date()
	y2, m2, d2 := date.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}
	return b.StartMinute < endMinute && startMinute < b.EndMinute
}
