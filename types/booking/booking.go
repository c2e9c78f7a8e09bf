package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"venue-booking/models/venue"
)

// BookingCreateRequest represents the request payload for creating a booking.
// Times use the 24h "HH:MM" form; the pair bounds the half-open interval
// [start, end) on the booking date. Status is never client-supplied.
type BookingCreateRequest struct {
	VenueID           uint     `json:"venue_id" validate:"required"`
	BookingDate       string   `json:"booking_date" validate:"required"` // YYYY-MM-DD
	StartTime         string   `json:"start_time" validate:"required"`   // HH:MM
	EndTime           string   `json:"end_time" validate:"required"`     // HH:MM
	RequiredCapacity  int      `json:"required_capacity" validate:"required,gt=0"`
	RequiredAmenities []string `json:"required_amenities" validate:"omitempty"`
	Purpose           string   `json:"purpose" validate:"required,min=1"`
	EventDetails      string   `json:"event_details" validate:"omitempty"`
}

func (b BookingCreateRequest) Validate() error {
	if b.VenueID == 0 {
		return fmt.Errorf("venue_id is required")
	}
	if _, err := ParseDate(b.BookingDate); err != nil {
		return err
	}
	start, err := ParseClock(b.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseClock(b.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if start >= end {
		return fmt.Errorf("start_time must be before end_time")
	}
	if b.RequiredCapacity <= 0 {
		return fmt.Errorf("required_capacity must be greater than zero")
	}
	for _, a := range b.RequiredAmenities {
		if !venue.ValidAmenity(a) {
			return fmt.Errorf("unknown amenity: %s", a)
		}
	}
	if strings.TrimSpace(b.Purpose) == "" {
		return fmt.Errorf("purpose is required")
	}
	return nil
}

// ApproveRequest represents an administrator's approval decision.
type ApproveRequest struct {
	ApprovedCost  float64 `json:"approved_cost" validate:"gte=0"`
	ControlNumber string  `json:"control_number" validate:"omitempty,max=100"`
}

// Validate enforces the approval protocol before any database write:
// the cost must be non-negative, and a nonzero cost requires a control number.
func (r ApproveRequest) Validate() error {
	if r.ApprovedCost < 0 {
		return fmt.Errorf("approved_cost must be a non-negative number")
	}
	if r.ApprovedCost > 0 && strings.TrimSpace(r.ControlNumber) == "" {
		return fmt.Errorf("control_number is required when approved_cost is greater than zero")
	}
	return nil
}

// RejectRequest represents an administrator's rejection decision.
type RejectRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required,min=1"`
}

func (r RejectRequest) Validate() error {
	if strings.TrimSpace(r.RejectionReason) == "" {
		return fmt.Errorf("rejection_reason is required")
	}
	return nil
}

// CancelRequest represents a requester's cancellation of a pending booking.
type CancelRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required,min=1"`
}

func (r CancelRequest) Validate() error {
	if strings.TrimSpace(r.CancellationReason) == "" {
		return fmt.Errorf("cancellation_reason is required")
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// ParseClock parses an "HH:MM" clock time into minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
