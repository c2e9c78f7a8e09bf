package booking

import (
	"errors"

	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	userModel "venue-booking/models/user"
	venueModel "venue-booking/models/venue"
	"venue-booking/services"
	"venue-booking/services/availability"
	"venue-booking/services/booking_event"
	"venue-booking/types"
	bookingTypes "venue-booking/types/booking"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Policy *services.PolicyService
}

func NewBookingController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *BookingController {
	return &BookingController{DB: db, Logger: asyncLogger, Policy: services.NewPolicyService()}
}

// Store creates a booking. Every new booking starts in pending; the status is
// never taken from the client.
func (h *BookingController) Store(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req bookingTypes.BookingCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	date, _ := bookingTypes.ParseDate(req.BookingDate)
	start, _ := bookingTypes.ParseClock(req.StartTime)
	end, _ := bookingTypes.ParseClock(req.EndTime)

	var v venueModel.Venue
	if err := h.DB.First(&v, req.VenueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Venue not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to fetch venue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch venue",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !v.IsActive {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Venue is not available for booking",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}
	if v.Capacity < req.RequiredCapacity {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Venue capacity is below the required capacity",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}
	if !v.HasAmenities(req.RequiredAmenities) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
			Message: "Venue does not provide all required amenities",
			Status:  fiber.StatusUnprocessableEntity,
		})
	}

	criteria := availability.Criteria{
		Date:        date,
		StartMinute: start,
		EndMinute:   end,
	}
	conflict, err := availability.VenueConflicts(h.DB, v.ID, criteria, 0)
	if err != nil {
		logger.Error("Conflict check failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to check venue availability",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if conflict {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Venue is already booked for the requested time window",
			Status:  fiber.StatusConflict,
		})
	}

	newBooking := bookingModel.Booking{
		BookingCode:       uuid.NewString(),
		UserID:            account.ID,
		VenueID:           v.ID,
		BookingDate:       date,
		StartMinute:       start,
		EndMinute:         end,
		RequiredCapacity:  req.RequiredCapacity,
		RequiredAmenities: userModel.StringSlice(req.RequiredAmenities),
		Purpose:           req.Purpose,
		Status:            bookingModel.StatusPending,
		CreatedBy:         account.Uuid,
	}
	if req.EventDetails != "" {
		newBooking.EventDetails = &req.EventDetails
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newBooking).Error; err != nil {
			return err
		}
		return booking_event.RecordStatusEvent(tx, &newBooking, "booking_created", account.Uuid)
	})
	if err != nil {
		logger.Error("Failed to create booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	// Refetch with relations for the response
	if err := h.DB.Preload("Venue").Preload("User").First(&newBooking, newBooking.ID).Error; err != nil {
		logger.Error("Failed to reload booking", err)
	}

	logger.Success("Booking created: " + newBooking.BookingCode)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Booking created successfully",
		Status:  fiber.StatusCreated,
		Data:    newBooking,
	})
}

// Index lists bookings. Requesters see only their own; administrators see all
// and may filter by status, venue, or user.
func (h *BookingController) Index(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	query := h.DB.Preload("Venue").Order("created_at desc")

	if account.IsAdmin() {
		if status := c.Query("status"); status != "" {
			if !bookingModel.Status(status).IsValid() {
				return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
					Message: "Unknown status filter: " + status,
					Status:  fiber.StatusBadRequest,
				})
			}
			query = query.Where("status = ?", status)
		}
		if venueID := c.QueryInt("venue_id"); venueID > 0 {
			query = query.Where("venue_id = ?", venueID)
		}
		if userID := c.QueryInt("user_id"); userID > 0 {
			query = query.Where("user_id = ?", userID)
		}
		query = query.Preload("User")
	} else {
		query = query.Where("user_id = ?", account.ID)
	}

	var bookings []bookingModel.Booking
	if err := query.Find(&bookings).Error; err != nil {
		logger.Error("Failed to list bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch bookings",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Bookings fetched successfully",
		Status:  fiber.StatusOK,
		Data:    bookings,
	})
}

// Show returns a single booking with its venue, payment, and status history.
// Owners and administrators only.
func (h *BookingController) Show(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	b, errResp := h.loadBookingByCode(c)
	if errResp != nil {
		return errResp(c)
	}

	if !h.Policy.CanViewBooking(account, b) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "You do not have access to this booking",
			Status:  fiber.StatusForbidden,
		})
	}

	var events []bookingModel.BookingStatusEvent
	if err := h.DB.Where("booking_id = ?", b.ID).Order("created_at asc").Find(&events).Error; err != nil {
		logger.Error("Failed to load status history", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"booking":        b,
			"status_history": events,
		},
	})
}

// Cancel moves a pending booking to cancelled. Owner only; a reason is
// required and any other status is rejected.
func (h *BookingController) Cancel(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req bookingTypes.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	b, errResp := h.loadBookingByCode(c)
	if errResp != nil {
		return errResp(c)
	}

	if !h.Policy.CanActOnBooking(account, b) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only the booking owner can cancel it",
			Status:  fiber.StatusForbidden,
		})
	}

	if !b.Status.CanCancel() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Only pending bookings can be cancelled (current status: " + b.Status.String() + ")",
			Status:  fiber.StatusConflict,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		b.Status = bookingModel.StatusCancelled
		b.CancellationReason = &req.CancellationReason
		b.UpdatedBy = account.Uuid
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		return booking_event.RecordStatusEvent(tx, b, "booking_cancelled", account.Uuid)
	})
	if err != nil {
		logger.Error("Failed to cancel booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to cancel booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Booking cancelled: " + b.BookingCode)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking cancelled successfully",
		Status:  fiber.StatusOK,
		Data:    b,
	})
}

// loadBookingByCode fetches the booking named by the :code route param. On
// failure it returns a handler producing the error response.
func (h *BookingController) loadBookingByCode(c *fiber.Ctx) (*bookingModel.Booking, func(*fiber.Ctx) error) {
	code := c.Params("code")
	if code == "" {
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: "Booking code is required",
				Status:  fiber.StatusBadRequest,
			})
		}
	}

	var b bookingModel.Booking
	err := h.DB.Preload("Venue").Preload("User").Where("booking_code = ?", code).First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
					Message: "Booking not found",
					Status:  fiber.StatusNotFound,
				})
			}
		}
		logger.Error("Failed to fetch booking", err)
		return nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to fetch booking",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}
	return &b, nil
}
