package payment

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	bookingModel "venue-booking/models/booking"
	paymentModel "venue-booking/models/payment"
	"venue-booking/utils"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

const defaultDeadlineDays = 7

var (
	ErrAlreadyConfirmed = errors.New("payment is already confirmed")
	ErrNoTransaction    = errors.New("payment has no submitted transaction")
)

// DeadlineFrom computes the payment deadline: the end of the day that lies
// PAYMENT_DEADLINE_DAYS after the approval instant.
func DeadlineFrom(approvedAt time.Time) time.Time {
	days := defaultDeadlineDays
	if v := os.Getenv("PAYMENT_DEADLINE_DAYS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			days = parsed
		}
	}
	return now.With(approvedAt.AddDate(0, 0, days)).EndOfDay()
}

// CreateForApproval derives the payment record for a booking approved with a
// nonzero cost. Must run inside the approval transaction.
func CreateForApproval(tx *gorm.DB, b *bookingModel.Booking) (*paymentModel.Payment, error) {
	if !b.RequiresPayment() {
		return nil, fmt.Errorf("booking %d has no payable cost", b.ID)
	}
	if b.ControlNumber == nil || *b.ControlNumber == "" {
		return nil, fmt.Errorf("booking %d is missing a control number", b.ID)
	}

	p := &paymentModel.Payment{
		BookingID:     b.ID,
		Amount:        *b.ApprovedCost,
		ControlNumber: *b.ControlNumber,
		Status:        paymentModel.StatusPending,
		Deadline:      DeadlineFrom(time.Now()),
	}

	if err := tx.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return p, nil
}

// AttachTransaction stores the requester's gateway transaction reference,
// encrypted at rest.
func AttachTransaction(db *gorm.DB, p *paymentModel.Payment, transactionID string) error {
	if p.Status == paymentModel.StatusConfirmed {
		return ErrAlreadyConfirmed
	}

	encrypted, err := utils.EncryptData(transactionID)
	if err != nil {
		return fmt.Errorf("failed to encrypt transaction id: %w", err)
	}

	p.TransactionIDEncrypted = &encrypted
	return db.Save(p).Error
}

// TransactionID decrypts the stored gateway transaction reference.
func TransactionID(p *paymentModel.Payment) (string, error) {
	if p.TransactionIDEncrypted == nil || *p.TransactionIDEncrypted == "" {
		return "", ErrNoTransaction
	}
	return utils.DecryptData(*p.TransactionIDEncrypted)
}

// Confirm marks the payment confirmed and moves its booking to paid. Runs in
// a single transaction so the pair can never diverge.
func Confirm(db *gorm.DB, p *paymentModel.Payment, confirmedBy string, recordEvent func(tx *gorm.DB, b *bookingModel.Booking) error) error {
	if p.Status == paymentModel.StatusConfirmed {
		return ErrAlreadyConfirmed
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var b bookingModel.Booking
		if err := tx.First(&b, p.BookingID).Error; err != nil {
			return err
		}
		if !b.Status.CanMarkPaid() {
			return fmt.Errorf("booking %d cannot move to paid from status %s", b.ID, b.Status)
		}

		paidAt := time.Now()
		p.Status = paymentModel.StatusConfirmed
		p.PaidAt = &paidAt
		if err := tx.Save(p).Error; err != nil {
			return err
		}

		b.Status = bookingModel.StatusPaid
		b.UpdatedBy = confirmedBy
		if err := tx.Save(&b).Error; err != nil {
			return err
		}

		if recordEvent != nil {
			return recordEvent(tx, &b)
		}
		return nil
	})
}
