package feedback

import (
	"errors"

	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	feedbackModel "venue-booking/models/feedback"
	"venue-booking/services"
	"venue-booking/types"
	feedbackTypes "venue-booking/types/feedback"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FeedbackController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
	Policy *services.PolicyService
}

func NewFeedbackController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *FeedbackController {
	return &FeedbackController{DB: db, Logger: asyncLogger, Policy: services.NewPolicyService()}
}

// Store records the owner's rating for a paid or completed booking. One
// feedback per booking.
func (h *FeedbackController) Store(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req feedbackTypes.FeedbackRequest
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

	code := c.Params("code")
	var b bookingModel.Booking
	if err := h.DB.Where("booking_code = ?", code).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Message: "Booking not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to fetch booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !h.Policy.CanActOnBooking(account, &b) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only the booking owner can leave feedback",
			Status:  fiber.StatusForbidden,
		})
	}

	if !b.Status.AcceptsFeedback() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Feedback is only accepted for paid or completed bookings (current status: " + b.Status.String() + ")",
			Status:  fiber.StatusConflict,
		})
	}

	var existing feedbackModel.Feedback
	err = h.DB.Where("booking_id = ?", b.ID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Feedback has already been submitted for this booking",
			Status:  fiber.StatusConflict,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing feedback", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	fb := feedbackModel.Feedback{
		BookingID: b.ID,
		UserID:    account.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.DB.Create(&fb).Error; err != nil {
		logger.Error("Failed to save feedback", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to save feedback",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Feedback saved for booking: " + b.BookingCode)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Feedback submitted successfully",
		Status:  fiber.StatusCreated,
		Data:    fb,
	})
}

// Index lists feedback for a venue together with its average rating.
func (h *FeedbackController) Index(c *fiber.Ctx) error {
	venueID, err := c.ParamsInt("venue_id")
	if err != nil || venueID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid venue id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var feedbacks []feedbackModel.Feedback
	err = h.DB.
		Select("feedbacks.*").
		Joins("JOIN bookings ON bookings.id = feedbacks.booking_id").
		Where("bookings.venue_id = ?", venueID).
		Order("feedbacks.created_at desc").
		Find(&feedbacks).Error
	if err != nil {
		logger.Error("Failed to list feedback", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch feedback",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var average float64
	if len(feedbacks) > 0 {
		total := 0
		for _, fb := range feedbacks {
			total += fb.Rating
		}
		average = float64(total) / float64(len(feedbacks))
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Feedback fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"count":          len(feedbacks),
			"average_rating": average,
			"feedback":       feedbacks,
		},
	})
}
