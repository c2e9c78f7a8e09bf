package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCreate() BookingCreateRequest {
	return BookingCreateRequest{
		VenueID:          1,
		BookingDate:      "2026-09-10",
		StartTime:        "09:00",
		EndTime:          "12:00",
		RequiredCapacity: 30,
		Purpose:          "Department seminar",
	}
}

func TestBookingCreateRequestValidate(t *testing.T) {
	assert.NoError(t, validCreate().Validate())

	tests := []struct {
		name   string
		mutate func(*BookingCreateRequest)
	}{
		{"missing venue", func(r *BookingCreateRequest) { r.VenueID = 0 }},
		{"bad date", func(r *BookingCreateRequest) { r.BookingDate = "10/09/2026" }},
		{"bad start time", func(r *BookingCreateRequest) { r.StartTime = "9am" }},
		{"bad end time", func(r *BookingCreateRequest) { r.EndTime = "25:00" }},
		{"start after end", func(r *BookingCreateRequest) { r.StartTime = "14:00"; r.EndTime = "12:00" }},
		{"start equals end", func(r *BookingCreateRequest) { r.StartTime = "12:00"; r.EndTime = "12:00" }},
		{"zero capacity", func(r *BookingCreateRequest) { r.RequiredCapacity = 0 }},
		{"unknown amenity", func(r *BookingCreateRequest) { r.RequiredAmenities = []string{"jacuzzi"} }},
		{"blank purpose", func(r *BookingCreateRequest) { r.Purpose = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validCreate()
			tt.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestApproveRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ApproveRequest
		wantErr bool
	}{
		{"free approval needs no control number", ApproveRequest{ApprovedCost: 0}, false},
		{"paid approval with control number", ApproveRequest{ApprovedCost: 1500, ControlNumber: "CN-2026-0001"}, false},
		{"paid approval without control number", ApproveRequest{ApprovedCost: 1500}, true},
		{"paid approval with blank control number", ApproveRequest{ApprovedCost: 1500, ControlNumber: "   "}, true},
		{"negative cost", ApproveRequest{ApprovedCost: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReasonRequests(t *testing.T) {
	assert.Error(t, RejectRequest{}.Validate())
	assert.Error(t, RejectRequest{RejectionReason: "  "}.Validate())
	assert.NoError(t, RejectRequest{RejectionReason: "Venue under maintenance"}.Validate())

	assert.Error(t, CancelRequest{}.Validate())
	assert.NoError(t, CancelRequest{CancellationReason: "Event postponed"}.Validate())
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			assert.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.minutes, got)
		}
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:30", FormatClock(570))
	assert.Equal(t, "23:59", FormatClock(1439))
}
