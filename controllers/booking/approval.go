package booking

import (
	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	"venue-booking/services/booking_event"
	paymentService "venue-booking/services/payment"
	"venue-booking/types"
	bookingTypes "venue-booking/types/booking"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Approve moves a pending booking to approved. The approved cost must be
// non-negative; a nonzero cost requires a control number and creates the
// pending payment in the same transaction, so a payable approval can never
// exist without its payment row.
func (h *BookingController) Approve(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !h.Policy.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only administrators can decide bookings",
			Status:  fiber.StatusForbidden,
		})
	}

	var req bookingTypes.ApproveRequest
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

	if !b.Status.CanApprove() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Only pending bookings can be approved (current status: " + b.Status.String() + ")",
			Status:  fiber.StatusConflict,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		b.Status = bookingModel.StatusApproved
		b.ApprovedCost = &req.ApprovedCost
		if req.ApprovedCost > 0 {
			b.ControlNumber = &req.ControlNumber
		}
		b.UpdatedBy = actor.Uuid
		if err := tx.Save(b).Error; err != nil {
			return err
		}

		if b.RequiresPayment() {
			if _, err := paymentService.CreateForApproval(tx, b); err != nil {
				return err
			}
		}

		return booking_event.RecordStatusEvent(tx, b, "booking_approved", actor.Uuid)
	})
	if err != nil {
		logger.Error("Failed to approve booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to approve booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Booking approved: " + b.BookingCode)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking approved successfully",
		Status:  fiber.StatusOK,
		Data:    b,
	})
}

// Reject moves a pending booking to rejected with a mandatory reason.
func (h *BookingController) Reject(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !h.Policy.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only administrators can decide bookings",
			Status:  fiber.StatusForbidden,
		})
	}

	var req bookingTypes.RejectRequest
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

	if !b.Status.CanApprove() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Only pending bookings can be rejected (current status: " + b.Status.String() + ")",
			Status:  fiber.StatusConflict,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		b.Status = bookingModel.StatusRejected
		b.RejectionReason = &req.RejectionReason
		b.UpdatedBy = actor.Uuid
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		return booking_event.RecordStatusEvent(tx, b, "booking_rejected", actor.Uuid)
	})
	if err != nil {
		logger.Error("Failed to reject booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to reject booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Booking rejected: " + b.BookingCode)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking rejected successfully",
		Status:  fiber.StatusOK,
		Data:    b,
	})
}

// Complete moves a paid booking to completed after the event has taken place.
func (h *BookingController) Complete(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !h.Policy.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only administrators can complete bookings",
			Status:  fiber.StatusForbidden,
		})
	}

	b, errResp := h.loadBookingByCode(c)
	if errResp != nil {
		return errResp(c)
	}

	if !b.Status.CanComplete() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "Only paid bookings can be completed (current status: " + b.Status.String() + ")",
			Status:  fiber.StatusConflict,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		b.Status = bookingModel.StatusCompleted
		b.UpdatedBy = actor.Uuid
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		return booking_event.RecordStatusEvent(tx, b, "booking_completed", actor.Uuid)
	})
	if err != nil {
		logger.Error("Failed to complete booking", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to complete booking",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Booking completed: " + b.BookingCode)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Booking completed successfully",
		Status:  fiber.StatusOK,
		Data:    b,
	})
}
