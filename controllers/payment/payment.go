package payment

import (
	"errors"
	"fmt"
	"os"
	"time"

	"venue-booking/httpServices/gateway"
	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	paymentModel "venue-booking/models/payment"
	"venue-booking/services"
	"venue-booking/services/booking_event"
	paymentService "venue-booking/services/payment"
	"venue-booking/types"
	paymentTypes "venue-booking/types/payment"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentController struct {
	DB      *gorm.DB
	Logger  *logger.AsyncLogger
	Policy  *services.PolicyService
	Gateway *gateway.GatewayClient
}

func NewPaymentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *PaymentController {
	return &PaymentController{
		DB:      db,
		Logger:  asyncLogger,
		Policy:  services.NewPolicyService(),
		Gateway: gateway.NewClient(os.Getenv("PAYMENT_GATEWAY_BASE_URL")),
	}
}

// Index lists payments as views carrying the derived overdue flag.
// Requesters see their own; administrators see all, with optional
// status/overdue filters.
func (h *PaymentController) Index(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	query := h.DB.Preload("Booking").Order("payments.created_at desc")
	if !account.IsAdmin() {
		query = query.Select("payments.*").
			Joins("JOIN bookings ON bookings.id = payments.booking_id").
			Where("bookings.user_id = ?", account.ID)
	} else if status := c.Query("status"); status != "" {
		if status != string(paymentModel.StatusPending) && status != string(paymentModel.StatusConfirmed) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: "Unknown status filter: " + status,
				Status:  fiber.StatusBadRequest,
			})
		}
		query = query.Where("payments.status = ?", status)
	}

	var payments []paymentModel.Payment
	if err := query.Find(&payments).Error; err != nil {
		logger.Error("Failed to list payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch payments",
			Status:  fiber.StatusInternalServerError,
		})
	}

	now := time.Now()
	overdueOnly := c.Query("overdue") == "true"
	views := make([]paymentModel.View, 0, len(payments))
	for i := range payments {
		v := payments[i].ToView(now)
		if overdueOnly && !v.Overdue {
			continue
		}
		views = append(views, v)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Payments fetched successfully",
		Status:  fiber.StatusOK,
		Data:    views,
	})
}

// Show returns a single payment view by booking code.
func (h *PaymentController) Show(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	p, b, errResp := h.loadPaymentByBookingCode(c)
	if errResp != nil {
		return errResp(c)
	}

	if !h.Policy.CanViewBooking(account, b) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "You do not have access to this payment",
			Status:  fiber.StatusForbidden,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Payment fetched successfully",
		Status:  fiber.StatusOK,
		Data:    p.ToView(time.Now()),
	})
}

// Submit stores the requester's gateway transaction reference for a pending
// payment. The reference is encrypted at rest.
func (h *PaymentController) Submit(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req paymentTypes.SubmitPaymentRequest
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

	p, b, errResp := h.loadPaymentByBookingCode(c)
	if errResp != nil {
		return errResp(c)
	}

	if !h.Policy.CanActOnBooking(account, b) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only the booking owner can submit a payment",
			Status:  fiber.StatusForbidden,
		})
	}

	if err := paymentService.AttachTransaction(h.DB, p, req.TransactionID); err != nil {
		if errors.Is(err, paymentService.ErrAlreadyConfirmed) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Message: "Payment is already confirmed",
				Status:  fiber.StatusConflict,
			})
		}
		logger.Error("Failed to store transaction reference", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to store transaction reference",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Transaction submitted for booking: " + b.BookingCode)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Transaction reference submitted successfully",
		Status:  fiber.StatusOK,
		Data:    p.ToView(time.Now()),
	})
}

// Confirm marks a payment as settled and moves its booking to paid. Admin
// only. With verify=true the gateway is consulted first and a transaction
// that does not settle the control number is refused.
func (h *PaymentController) Confirm(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !h.Policy.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only administrators can confirm payments",
			Status:  fiber.StatusForbidden,
		})
	}

	p, b, errResp := h.loadPaymentByBookingCode(c)
	if errResp != nil {
		return errResp(c)
	}

	if c.Query("verify") == "true" {
		transactionID, err := paymentService.TransactionID(p)
		if err != nil {
			if errors.Is(err, paymentService.ErrNoTransaction) {
				return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
					Message: "No transaction reference has been submitted for this payment",
					Status:  fiber.StatusConflict,
				})
			}
			logger.Error("Failed to decrypt transaction reference", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to read transaction reference",
				Status:  fiber.StatusInternalServerError,
			})
		}

		verification, err := h.Gateway.VerifyTransaction(gateway.VerifyTransactionRequest{
			ControlNumber: p.ControlNumber,
			TransactionID: transactionID,
			Amount:        p.Amount,
		})
		if err != nil {
			logger.Error("Gateway verification failed", err)
			return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
				Message: "Payment gateway verification failed",
				Status:  fiber.StatusBadGateway,
			})
		}
		if !verification.Settled {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(types.ApiResponse{
				Message: "Gateway reports the transaction does not settle this control number: " + verification.Message,
				Status:  fiber.StatusUnprocessableEntity,
			})
		}
	}

	err = paymentService.Confirm(h.DB, p, actor.Uuid, func(tx *gorm.DB, b *bookingModel.Booking) error {
		return booking_event.RecordStatusEvent(tx, b, "payment_confirmed", actor.Uuid)
	})
	if err != nil {
		if errors.Is(err, paymentService.ErrAlreadyConfirmed) {
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Message: "Payment is already confirmed",
				Status:  fiber.StatusConflict,
			})
		}
		logger.Error("Failed to confirm payment", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to confirm payment",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success(fmt.Sprintf("Payment confirmed for booking %s by %s", b.BookingCode, actor.Uuid))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Payment confirmed successfully",
		Status:  fiber.StatusOK,
		Data:    p.ToView(time.Now()),
	})
}

// Reconcile sweeps every pending payment that carries a submitted
// transaction reference through the gateway and confirms the ones the
// gateway reports as settled. Admin only. Payments whose reference cannot
// be read or verified are counted and left pending for the next sweep.
func (h *PaymentController) Reconcile(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if !h.Policy.IsAdmin(c) {
		return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
			Message: "Only administrators can reconcile payments",
			Status:  fiber.StatusForbidden,
		})
	}

	var pending []paymentModel.Payment
	err = h.DB.Preload("Booking").
		Where("status = ? AND transaction_id_encrypted IS NOT NULL", paymentModel.StatusPending).
		Order("payments.created_at asc").
		Find(&pending).Error
	if err != nil {
		logger.Error("Failed to list pending payments", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch pending payments",
			Status:  fiber.StatusInternalServerError,
		})
	}

	checked := len(pending)
	confirmed := 0
	unsettled := 0
	failed := 0
	for i := range pending {
		p := &pending[i]

		transactionID, err := paymentService.TransactionID(p)
		if err != nil {
			logger.Error("Failed to decrypt transaction reference for booking "+p.Booking.BookingCode, err)
			failed++
			continue
		}

		verification, err := h.Gateway.VerifyTransaction(gateway.VerifyTransactionRequest{
			ControlNumber: p.ControlNumber,
			TransactionID: transactionID,
			Amount:        p.Amount,
		})
		if err != nil {
			logger.Error("Gateway verification failed for booking "+p.Booking.BookingCode, err)
			failed++
			continue
		}
		if !verification.Settled {
			unsettled++
			continue
		}

		err = paymentService.Confirm(h.DB, p, actor.Uuid, func(tx *gorm.DB, b *bookingModel.Booking) error {
			return booking_event.RecordStatusEvent(tx, b, "payment_confirmed", actor.Uuid)
		})
		if err != nil {
			logger.Error("Failed to confirm payment for booking "+p.Booking.BookingCode, err)
			failed++
			continue
		}
		confirmed++
	}

	logger.Success(fmt.Sprintf("Reconcile sweep by %s: %d checked, %d confirmed", actor.Uuid, checked, confirmed))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Reconciliation completed",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"checked":   checked,
			"confirmed": confirmed,
			"unsettled": unsettled,
			"failed":    failed,
		},
	})
}

// loadPaymentByBookingCode resolves the :code route param to its payment.
func (h *PaymentController) loadPaymentByBookingCode(c *fiber.Ctx) (*paymentModel.Payment, *bookingModel.Booking, func(*fiber.Ctx) error) {
	code := c.Params("code")

	var b bookingModel.Booking
	if err := h.DB.Where("booking_code = ?", code).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
					Message: "Booking not found",
					Status:  fiber.StatusNotFound,
				})
			}
		}
		logger.Error("Failed to fetch booking", err)
		return nil, nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to fetch booking",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	var p paymentModel.Payment
	if err := h.DB.Preload("Booking").Where("booking_id = ?", b.ID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
					Message: "No payment exists for this booking",
					Status:  fiber.StatusNotFound,
				})
			}
		}
		logger.Error("Failed to fetch payment", err)
		return nil, nil, func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Message: "Failed to fetch payment",
				Status:  fiber.StatusInternalServerError,
			})
		}
	}

	return &p, &b, nil
}
