package payment

import (
	"time"

	"venue-booking/models/booking"
)

// Payment statuses. Overdue is a derived view, never stored.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Payment is the payable record derived from a booking approved with a
// nonzero cost. Exactly one payment exists per such booking.
type Payment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for booking relationship
	BookingID uint            `gorm:"not null;uniqueIndex" json:"booking_id"`
	Booking   booking.Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"booking"`

	Amount        float64   `gorm:"not null" json:"amount"`
	ControlNumber string    `gorm:"type:varchar(100);not null" json:"control_number"`
	Status        Status    `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	Deadline      time.Time `gorm:"not null" json:"deadline"`

	// Gateway transaction reference, AES-GCM encrypted at rest
	TransactionIDEncrypted *string    `gorm:"column:transaction_id_encrypted;type:text" json:"-"`
	PaidAt                 *time.Time `gorm:"" json:"paid_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsOverdue reports whether the payment is still pending past its deadline
// at the given instant.
func (p *Payment) IsOverdue(at time.Time) bool {
	return p.Status == StatusPending && at.After(p.Deadline)
}

// View is the API shape for a payment, carrying the derived overdue flag.
type View struct {
	ID             uint       `json:"id"`
	BookingID      uint       `json:"booking_id"`
	BookingCode    string     `json:"booking_code,omitempty"`
	Amount         float64    `json:"amount"`
	ControlNumber  string     `json:"control_number"`
	Status         Status     `json:"status"`
	Overdue        bool       `json:"overdue"`
	Deadline       time.Time  `json:"deadline"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	HasTransaction bool       `json:"has_transaction"`
}

// ToView derives the API view of the payment at the given instant.
func (p *Payment) ToView(at time.Time) View {
	return View{
		ID:             p.ID,
		BookingID:      p.BookingID,
		BookingCode:    p.Booking.BookingCode,
		Amount:         p.Amount,
		ControlNumber:  p.ControlNumber,
		Status:         p.Status,
		Overdue:        p.IsOverdue(at),
		Deadline:       p.Deadline,
		PaidAt:         p.PaidAt,
		HasTransaction: p.TransactionIDEncrypted != nil && *p.TransactionIDEncrypted != "",
	}
}
