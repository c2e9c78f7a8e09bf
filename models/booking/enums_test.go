package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range GetAllStatuses() {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}
	assert.False(t, Status("unknown").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusRejected:  true,
		StatusCompleted: true,
		StatusCancelled: true,
	}
	for _, s := range GetAllStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), "terminal check for %s", s)
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to approved", StatusPending, StatusApproved, true},
		{"pending to rejected", StatusPending, StatusRejected, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to paid skips approval", StatusPending, StatusPaid, false},
		{"pending to completed skips everything", StatusPending, StatusCompleted, false},
		{"approved to paid", StatusApproved, StatusPaid, true},
		{"approved to completed skips payment", StatusApproved, StatusCompleted, false},
		{"approved cannot be cancelled", StatusApproved, StatusCancelled, false},
		{"approved cannot revert to pending", StatusApproved, StatusPending, false},
		{"paid to completed", StatusPaid, StatusCompleted, true},
		{"paid cannot revert", StatusPaid, StatusApproved, false},
		{"rejected is terminal", StatusRejected, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusApproved, false},
		{"completed is terminal", StatusCompleted, StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatusGuards(t *testing.T) {
	assert.True(t, StatusPending.CanApprove())
	assert.True(t, StatusPending.CanCancel())
	assert.False(t, StatusApproved.CanCancel())

	assert.True(t, StatusApproved.CanAttachEvidence())
	assert.False(t, StatusPending.CanAttachEvidence())
	assert.False(t, StatusPaid.CanAttachEvidence())

	assert.True(t, StatusApproved.CanMarkPaid())
	assert.False(t, StatusPending.CanMarkPaid())

	assert.True(t, StatusPaid.CanComplete())
	assert.False(t, StatusApproved.CanComplete())
}

func TestAcceptsFeedback(t *testing.T) {
	accepting := map[Status]bool{
		StatusPaid:      true,
		StatusCompleted: true,
	}
	for _, s := range GetAllStatuses() {
		assert.Equal(t, accepting[s], s.AcceptsFeedback(), "feedback check for %s", s)
	}
}
