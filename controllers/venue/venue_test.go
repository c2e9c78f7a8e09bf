package venue

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"venue-booking/constants"
	"venue-booking/database"
	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	paymentModel "venue-booking/models/payment"
	userModel "venue-booking/models/user"
	venueModel "venue-booking/models/venue"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB gives each test its own in-memory database with foreign key
// enforcement on, so the delete cascades behave like they do in production.
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

// adminApp builds a fiber app whose requests carry admin claims, plus the
// admin account those claims resolve to.
func adminApp(t *testing.T, db *gorm.DB) (*fiber.App, *userModel.User) {
	t.Helper()

	admin := &userModel.User{
		Uuid:         uuid.NewString(),
		FullName:     "Facilities Admin",
		Email:        "admin@campus.test",
		PasswordHash: "not-checked-here",
		Role:         userModel.RoleAdmin,
		Phone:        "0700000000",
		Permissions:  userModel.StringSlice{constants.PermAdminFull},
	}
	require.NoError(t, db.Create(admin).Error)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", jwt.MapClaims{
			"uuid":        admin.Uuid,
			"permissions": []interface{}{constants.PermAdminFull},
		})
		return c.Next()
	})
	return app, admin
}

func createRequester(t *testing.T, db *gorm.DB) *userModel.User {
	t.Helper()

	requester := &userModel.User{
		Uuid:         uuid.NewString(),
		FullName:     "Asha Mwangi",
		Email:        "asha@campus.test",
		PasswordHash: "not-checked-here",
		Role:         userModel.RoleStudent,
		Phone:        "0711111111",
		Permissions:  userModel.StringSlice{constants.PermStudentFull},
	}
	require.NoError(t, db.Create(requester).Error)
	return requester
}

func TestDestroyCascadesBookingsAndPayments(t *testing.T) {
	db := openTestDB(t)
	app, _ := adminApp(t, db)
	h := NewVenueController(db, logger.NewAsyncLogger(db))
	app.Delete("/venues/:id", h.Destroy)

	v := venueModel.Venue{
		Name:      "Old Assembly Hall",
		Capacity:  200,
		Location:  "North Campus",
		IsActive:  true,
		CreatedBy: "seed",
	}
	require.NoError(t, db.Create(&v).Error)

	requester := createRequester(t, db)

	cost := 5000.0
	control := "CTRL-9001"
	b := bookingModel.Booking{
		BookingCode:      uuid.NewString(),
		UserID:           requester.ID,
		VenueID:          v.ID,
		BookingDate:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartMinute:      540,
		EndMinute:        660,
		RequiredCapacity: 80,
		Purpose:          "Orientation ceremony",
		Status:           bookingModel.StatusApproved,
		ApprovedCost:     &cost,
		ControlNumber:    &control,
		CreatedBy:        requester.Uuid,
	}
	require.NoError(t, db.Create(&b).Error)

	p := paymentModel.Payment{
		BookingID:     b.ID,
		Amount:        cost,
		ControlNumber: control,
		Status:        paymentModel.StatusPending,
		Deadline:      time.Now().AddDate(0, 0, 7),
	}
	require.NoError(t, db.Create(&p).Error)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/venues/%d", v.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var venueCount, bookingCount, paymentCount int64
	require.NoError(t, db.Model(&venueModel.Venue{}).Where("id = ?", v.ID).Count(&venueCount).Error)
	require.NoError(t, db.Model(&bookingModel.Booking{}).Where("venue_id = ?", v.ID).Count(&bookingCount).Error)
	require.NoError(t, db.Model(&paymentModel.Payment{}).Where("booking_id = ?", b.ID).Count(&paymentCount).Error)
	assert.Zero(t, venueCount, "venue row must be removed")
	assert.Zero(t, bookingCount, "bookings must cascade with the venue")
	assert.Zero(t, paymentCount, "payments must cascade with their booking")
}

func TestDestroyUnknownVenue(t *testing.T) {
	db := openTestDB(t)
	app, _ := adminApp(t, db)
	h := NewVenueController(db, logger.NewAsyncLogger(db))
	app.Delete("/venues/:id", h.Destroy)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/venues/999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func imageUploadRequest(t *testing.T, target, mimeType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {`form-data; name="image"; filename="hall.png"`},
		"Content-Type":        {mimeType},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImageStoresPath(t *testing.T) {
	t.Chdir(t.TempDir())

	db := openTestDB(t)
	app, _ := adminApp(t, db)
	h := NewVenueController(db, logger.NewAsyncLogger(db))
	app.Post("/venues/:id/image", h.UploadImage)

	v := venueModel.Venue{
		Name:      "Seminar Room B",
		Capacity:  40,
		Location:  "Science Block",
		IsActive:  true,
		CreatedBy: "seed",
	}
	require.NoError(t, db.Create(&v).Error)

	req := imageUploadRequest(t, fmt.Sprintf("/venues/%d/image", v.ID), "image/png", []byte("png-bytes"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored venueModel.Venue
	require.NoError(t, db.First(&stored, v.ID).Error)
	require.NotNil(t, stored.ImagePath)
	assert.Contains(t, *stored.ImagePath, "uploaded_venues")

	_, err = os.Stat(*stored.ImagePath)
	assert.NoError(t, err, "stored image file must exist on disk")
}

func TestUploadImageRejectsWrongType(t *testing.T) {
	t.Chdir(t.TempDir())

	db := openTestDB(t)
	app, _ := adminApp(t, db)
	h := NewVenueController(db, logger.NewAsyncLogger(db))
	app.Post("/venues/:id/image", h.UploadImage)

	v := venueModel.Venue{
		Name:      "Seminar Room C",
		Capacity:  40,
		Location:  "Science Block",
		IsActive:  true,
		CreatedBy: "seed",
	}
	require.NoError(t, db.Create(&v).Error)

	req := imageUploadRequest(t, fmt.Sprintf("/venues/%d/image", v.ID), "text/plain", []byte("not an image"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var stored venueModel.Venue
	require.NoError(t, db.First(&stored, v.ID).Error)
	assert.Nil(t, stored.ImagePath)
}
