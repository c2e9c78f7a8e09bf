package booking_event

import (
	bookingModel "venue-booking/models/booking"

	"gorm.io/gorm"
)

// RecordStatusEvent appends an audit row for a booking transition. Call it
// inside the same transaction that mutates the booking so the trail never
// diverges from the row it describes.
func RecordStatusEvent(tx *gorm.DB, b *bookingModel.Booking, eventType string, createdBy string) error {
	ev := bookingModel.BookingStatusEvent{
		BookingID: b.ID,
		Status:    b.Status,
		EventType: eventType,
		CreatedBy: createdBy,
	}

	return tx.Create(&ev).Error
}
