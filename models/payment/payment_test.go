package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsOverdue(t *testing.T) {
	deadline := time.Date(2026, 9, 8, 23, 59, 59, 0, time.UTC)
	p := Payment{Status: StatusPending, Deadline: deadline}

	assert.False(t, p.IsOverdue(deadline.Add(-time.Hour)), "before deadline")
	assert.False(t, p.IsOverdue(deadline), "exactly at deadline")
	assert.True(t, p.IsOverdue(deadline.Add(time.Second)), "past deadline")

	p.Status = StatusConfirmed
	assert.False(t, p.IsOverdue(deadline.Add(24*time.Hour)), "confirmed payments are never overdue")
}

func TestToView(t *testing.T) {
	deadline := time.Date(2026, 9, 8, 23, 59, 59, 0, time.UTC)
	encrypted := "ciphertext"
	p := Payment{
		ID:                     7,
		BookingID:              11,
		Amount:                 2500,
		ControlNumber:          "CN-2026-0042",
		Status:                 StatusPending,
		Deadline:               deadline,
		TransactionIDEncrypted: &encrypted,
	}

	v := p.ToView(deadline.Add(time.Hour))
	assert.Equal(t, uint(7), v.ID)
	assert.Equal(t, uint(11), v.BookingID)
	assert.True(t, v.Overdue)
	assert.True(t, v.HasTransaction)
	assert.Equal(t, StatusPending, v.Status)

	p.TransactionIDEncrypted = nil
	v = p.ToView(deadline.Add(-time.Hour))
	assert.False(t, v.Overdue)
	assert.False(t, v.HasTransaction)
}
