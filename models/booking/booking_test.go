package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestOverlaps(t *testing.T) {
	b := Booking{
		BookingDate: day("2026-09-10"),
		StartMinute: 9 * 60,  // 09:00
		EndMinute:   12 * 60, // 12:00
		Status:      StatusApproved,
	}

	tests := []struct {
		name    string
		start   int
		end     int
		overlap bool
	}{
		{"identical window", 9 * 60, 12 * 60, true},
		{"contained window", 10 * 60, 11 * 60, true},
		{"straddles start", 8 * 60, 10 * 60, true},
		{"straddles end", 11 * 60, 13 * 60, true},
		{"touching at start does not overlap", 7 * 60, 9 * 60, false},
		{"touching at end does not overlap", 12 * 60, 14 * 60, false},
		{"fully before", 6 * 60, 8 * 60, false},
		{"fully after", 13 * 60, 15 * 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, b.Overlaps(day("2026-09-10"), tt.start, tt.end))
		})
	}
}

func TestOverlapsIgnoresOtherDatesAndDeadStatuses(t *testing.T) {
	b := Booking{
		BookingDate: day("2026-09-10"),
		StartMinute: 9 * 60,
		EndMinute:   12 * 60,
		Status:      StatusPending,
	}

	assert.False(t, b.Overlaps(day("2026-09-11"), 9*60, 12*60), "different date must not conflict")

	b.Status = StatusRejected
	assert.False(t, b.Overlaps(day("2026-09-10"), 9*60, 12*60), "rejected booking must not conflict")

	b.Status = StatusCancelled
	assert.False(t, b.Overlaps(day("2026-09-10"), 9*60, 12*60), "cancelled booking must not conflict")
}

func TestRequiresPayment(t *testing.T) {
	var b Booking
	assert.False(t, b.RequiresPayment(), "no approved cost yet")

	zero := 0.0
	b.ApprovedCost = &zero
	assert.False(t, b.RequiresPayment(), "zero cost approval is free")

	cost := 1500.0
	b.ApprovedCost = &cost
	assert.True(t, b.RequiresPayment())
}

func TestHasEvidence(t *testing.T) {
	var b Booking
	assert.False(t, b.HasEvidence())

	empty := ""
	b.EvidencePath = &empty
	assert.False(t, b.HasEvidence())

	path := "uploaded_evidence/abc_1.pdf"
	b.EvidencePath = &path
	assert.True(t, b.HasEvidence())
}
