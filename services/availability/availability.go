package availability

import (
	"time"

	bookingModel "venue-booking/models/booking"
	venueModel "venue-booking/models/venue"

	"gorm.io/gorm"
)

// Criteria is an availability query: a [StartMinute, EndMinute) window on
// Date, a minimum capacity, and a required amenity set.
type Criteria struct {
	Date              time.Time
	StartMinute       int
	EndMinute         int
	RequiredCapacity  int
	RequiredAmenities []string
}

// Filter returns the venues satisfying the criteria given the bookings that
// exist on the criteria date. A venue qualifies when it is active, its
// capacity covers the required guest count, its amenity set covers the
// required amenities, and none of its bookings overlap the requested window
// (bookings in a rejected or cancelled state never conflict).
func Filter(venues []venueModel.Venue, bookings []bookingModel.Booking, c Criteria) []venueModel.Venue {
	busy := make(map[uint]bool)
	for i := range bookings {
		b := &bookings[i]
		if b.Overlaps(c.Date, c.StartMinute, c.EndMinute) {
			busy[b.VenueID] = true
		}
	}

	matched := make([]venueModel.Venue, 0, len(venues))
	for _, v := range venues {
		if !v.IsActive {
			continue
		}
		if v.Capacity < c.RequiredCapacity {
			continue
		}
		if !v.HasAmenities(c.RequiredAmenities) {
			continue
		}
		if busy[v.ID] {
			continue
		}
		matched = append(matched, v)
	}
	return matched
}

// Search loads the active venues and the bookings on the criteria date and
// applies Filter.
func Search(db *gorm.DB, c Criteria) ([]venueModel.Venue, error) {
	var venues []venueModel.Venue
	if err := db.Where("is_active = ?", true).Order("name").Find(&venues).Error; err != nil {
		return nil, err
	}

	var bookings []bookingModel.Booking
	if err := db.Where("booking_date = ?", c.Date.Format("2006-01-02")).
		Where("status NOT IN ?", []bookingModel.Status{bookingModel.StatusRejected, bookingModel.StatusCancelled}).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return Filter(venues, bookings, c), nil
}

// VenueConflicts reports whether the given venue already has a conflicting
// booking in the window, optionally excluding one booking id.
func VenueConflicts(db *gorm.DB, venueID uint, c Criteria, excludeBookingID uint) (bool, error) {
	var count int64
	q := db.Model(&bookingModel.Booking{}).
		Where("venue_id = ?", venueID).
		Where("booking_date = ?", c.Date.Format("2006-01-02")).
		Where("status NOT IN ?", []bookingModel.Status{bookingModel.StatusRejected, bookingModel.StatusCancelled}).
		Where("start_minute < ? AND ? < end_minute", c.EndMinute, c.StartMinute)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
