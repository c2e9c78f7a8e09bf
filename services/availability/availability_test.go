package availability

import (
	"testing"
	"time"

	bookingModel "venue-booking/models/booking"
	userModel "venue-booking/models/user"
	venueModel "venue-booking/models/venue"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func testVenues() []venueModel.Venue {
	return []venueModel.Venue{
		{ID: 1, Name: "Seminar Room A", Capacity: 40, IsActive: true,
			Amenities: userModel.StringSlice{venueModel.AmenityProjector, venueModel.AmenityWifi}},
		{ID: 2, Name: "Lecture Theatre 1", Capacity: 120, IsActive: true,
			Amenities: userModel.StringSlice{venueModel.AmenityProjector, venueModel.AmenitySoundSystem, venueModel.AmenityAirConditioning}},
		{ID: 3, Name: "Banquet Hall", Capacity: 300, IsActive: false,
			Amenities: userModel.StringSlice{venueModel.AmenityCatering, venueModel.AmenityStage}},
	}
}

func TestFilterCapacity(t *testing.T) {
	c := Criteria{
		Date:             day("2026-09-10"),
		StartMinute:      9 * 60,
		EndMinute:        11 * 60,
		RequiredCapacity: 50,
	}

	matched := Filter(testVenues(), nil, c)

	// Seminar Room A holds 40 and must be excluded; the inactive hall never shows.
	assert.Len(t, matched, 1)
	assert.Equal(t, "Lecture Theatre 1", matched[0].Name)
}

func TestFilterAmenitySuperset(t *testing.T) {
	c := Criteria{
		Date:              day("2026-09-10"),
		StartMinute:       9 * 60,
		EndMinute:         11 * 60,
		RequiredCapacity:  10,
		RequiredAmenities: []string{venueModel.AmenityProjector, venueModel.AmenitySoundSystem},
	}

	matched := Filter(testVenues(), nil, c)

	assert.Len(t, matched, 1)
	assert.Equal(t, "Lecture Theatre 1", matched[0].Name)
}

func TestFilterExcludesOverlappingBookings(t *testing.T) {
	bookings := []bookingModel.Booking{
		{VenueID: 2, BookingDate: day("2026-09-10"), StartMinute: 10 * 60, EndMinute: 12 * 60,
			Status: bookingModel.StatusApproved},
	}

	c := Criteria{
		Date:             day("2026-09-10"),
		StartMinute:      9 * 60,
		EndMinute:        11 * 60,
		RequiredCapacity: 10,
	}

	matched := Filter(testVenues(), bookings, c)

	assert.Len(t, matched, 1)
	assert.Equal(t, "Seminar Room A", matched[0].Name)
}

func TestFilterBackToBackWindowsDoNotConflict(t *testing.T) {
	bookings := []bookingModel.Booking{
		{VenueID: 1, BookingDate: day("2026-09-10"), StartMinute: 9 * 60, EndMinute: 11 * 60,
			Status: bookingModel.StatusPending},
	}

	c := Criteria{
		Date:             day("2026-09-10"),
		StartMinute:      11 * 60, // starts exactly where the other ends
		EndMinute:        13 * 60,
		RequiredCapacity: 10,
	}

	matched := Filter(testVenues(), bookings, c)

	names := []string{matched[0].Name, matched[1].Name}
	assert.Len(t, matched, 2)
	assert.Contains(t, names, "Seminar Room A")
	assert.Contains(t, names, "Lecture Theatre 1")
}

func TestFilterIgnoresRejectedAndCancelled(t *testing.T) {
	bookings := []bookingModel.Booking{
		{VenueID: 1, BookingDate: day("2026-09-10"), StartMinute: 9 * 60, EndMinute: 17 * 60,
			Status: bookingModel.StatusRejected},
		{VenueID: 2, BookingDate: day("2026-09-10"), StartMinute: 9 * 60, EndMinute: 17 * 60,
			Status: bookingModel.StatusCancelled},
	}

	c := Criteria{
		Date:             day("2026-09-10"),
		StartMinute:      10 * 60,
		EndMinute:        12 * 60,
		RequiredCapacity: 10,
	}

	matched := Filter(testVenues(), bookings, c)
	assert.Len(t, matched, 2, "rejected and cancelled bookings must not block the slot")
}

func TestFilterOtherDateDoesNotConflict(t *testing.T) {
	bookings := []bookingModel.Booking{
		{VenueID: 1, BookingDate: day("2026-09-11"), StartMinute: 9 * 60, EndMinute: 17 * 60,
			Status: bookingModel.StatusApproved},
	}

	c := Criteria{
		Date:             day("2026-09-10"),
		StartMinute:      10 * 60,
		EndMinute:        12 * 60,
		RequiredCapacity: 10,
	}

	matched := Filter(testVenues(), bookings, c)
	assert.Len(t, matched, 2)
}
