package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"venue-booking/database"
	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	paymentModel "venue-booking/models/payment"
	userModel "venue-booking/models/user"
	venueModel "venue-booking/models/venue"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&userModel.User{},
		&venueModel.Venue{},
		&bookingModel.Booking{},
		&bookingModel.BookingStatusEvent{},
		&paymentModel.Payment{},
	))

	database.DB = db
	return db
}

func seedBooking(t *testing.T, db *gorm.DB, userID, venueID uint, status bookingModel.Status) *bookingModel.Booking {
	t.Helper()

	b := bookingModel.Booking{
		BookingCode:      uuid.NewString(),
		UserID:           userID,
		VenueID:          venueID,
		BookingDate:      time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		StartMinute:      480,
		EndMinute:        540,
		RequiredCapacity: 20,
		Purpose:          "Study group",
		Status:           status,
		CreatedBy:        "seed",
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func seedPayment(t *testing.T, db *gorm.DB, bookingID uint, status paymentModel.Status, deadline time.Time) {
	t.Helper()

	p := paymentModel.Payment{
		BookingID:     bookingID,
		Amount:        2500,
		ControlNumber: fmt.Sprintf("CTRL-%d", bookingID),
		Status:        status,
		Deadline:      deadline,
	}
	if status == paymentModel.StatusConfirmed {
		paidAt := time.Now()
		p.PaidAt = &paidAt
	}
	require.NoError(t, db.Create(&p).Error)
}

func TestSummaryCountsVenuesAndPayments(t *testing.T) {
	db := openTestDB(t)

	requester := userModel.User{
		Uuid:         uuid.NewString(),
		FullName:     "Report Requester",
		Email:        "reports@campus.test",
		PasswordHash: "not-checked-here",
		Role:         userModel.RoleStaff,
		Phone:        "0700000000",
	}
	require.NoError(t, db.Create(&requester).Error)

	active := venueModel.Venue{Name: "Main Hall", Capacity: 150, Location: "Main Campus", IsActive: true, CreatedBy: "seed"}
	retired := venueModel.Venue{Name: "Annex Hall", Capacity: 60, Location: "Annex", IsActive: false, CreatedBy: "seed"}
	require.NoError(t, db.Create(&active).Error)
	require.NoError(t, db.Create(&retired).Error)

	seedBooking(t, db, requester.ID, active.ID, bookingModel.StatusPending)
	approved := seedBooking(t, db, requester.ID, active.ID, bookingModel.StatusApproved)
	overdueApproved := seedBooking(t, db, requester.ID, active.ID, bookingModel.StatusApproved)
	paid := seedBooking(t, db, requester.ID, active.ID, bookingModel.StatusPaid)

	seedPayment(t, db, approved.ID, paymentModel.StatusPending, time.Now().AddDate(0, 0, 5))
	seedPayment(t, db, overdueApproved.ID, paymentModel.StatusPending, time.Now().AddDate(0, 0, -2))
	seedPayment(t, db, paid.ID, paymentModel.StatusConfirmed, time.Now().AddDate(0, 0, 5))

	h := NewReportController(db, logger.NewAsyncLogger(db))
	app := fiber.New()
	app.Get("/reports/summary", h.Summary)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reports/summary", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			TotalBookings     float64            `json:"total_bookings"`
			ByStatus          map[string]float64 `json:"by_status"`
			TotalVenues       float64            `json:"total_venues"`
			ActiveVenues      float64            `json:"active_venues"`
			PendingPayments   float64            `json:"pending_payments"`
			ConfirmedPayments float64            `json:"confirmed_payments"`
			OverduePayments   float64            `json:"overdue_payments"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, float64(4), body.Data.TotalBookings)
	assert.Equal(t, float64(1), body.Data.ByStatus["pending"])
	assert.Equal(t, float64(2), body.Data.ByStatus["approved"])
	assert.Equal(t, float64(1), body.Data.ByStatus["paid"])
	assert.Equal(t, float64(0), body.Data.ByStatus["rejected"])

	assert.Equal(t, float64(2), body.Data.TotalVenues)
	assert.Equal(t, float64(1), body.Data.ActiveVenues)

	assert.Equal(t, float64(2), body.Data.PendingPayments)
	assert.Equal(t, float64(1), body.Data.ConfirmedPayments)
	assert.Equal(t, float64(1), body.Data.OverduePayments)
}
