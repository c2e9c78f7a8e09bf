package feedback

import (
	"time"

	"venue-booking/models/booking"
	"venue-booking/models/user"
)

// Feedback is a requester's rating of a paid or completed booking.
// One feedback row per booking.
type Feedback struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint            `gorm:"not null;uniqueIndex" json:"booking_id"`
	Booking   booking.Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"booking"`

	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"` // 1..5
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
