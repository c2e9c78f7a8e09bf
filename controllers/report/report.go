package report

import (
	"time"

	"venue-booking/logger"
	bookingModel "venue-booking/models/booking"
	paymentModel "venue-booking/models/payment"
	venueModel "venue-booking/models/venue"
	"venue-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

type ReportController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewReportController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *ReportController {
	return &ReportController{DB: db, Logger: asyncLogger}
}

// Summary returns the admin dashboard counters. Every booking status gets
// its own tile; paid and completed are counted separately, and the total is
// the sum of all statuses. Venue counts and pending/confirmed/overdue
// payment counts ride along.
func (h *ReportController) Summary(c *fiber.Ctx) error {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := h.DB.Model(&bookingModel.Booking{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count bookings by status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to build report",
			Status:  fiber.StatusInternalServerError,
		})
	}

	counters := make(map[string]int64, len(bookingModel.GetAllStatuses()))
	for _, s := range bookingModel.GetAllStatuses() {
		counters[s.String()] = 0
	}
	var total int64
	for _, row := range rows {
		counters[row.Status] = row.Count
		total += row.Count
	}

	var totalVenues, activeVenues int64
	if err := h.DB.Model(&venueModel.Venue{}).Count(&totalVenues).Error; err != nil {
		logger.Error("Failed to count venues", err)
	}
	if err := h.DB.Model(&venueModel.Venue{}).
		Where("is_active = ?", true).
		Count(&activeVenues).Error; err != nil {
		logger.Error("Failed to count active venues", err)
	}

	var pendingPayments, confirmedPayments, overduePayments int64
	nowTime := time.Now()
	if err := h.DB.Model(&paymentModel.Payment{}).
		Where("status = ?", paymentModel.StatusPending).
		Count(&pendingPayments).Error; err != nil {
		logger.Error("Failed to count pending payments", err)
	}
	if err := h.DB.Model(&paymentModel.Payment{}).
		Where("status = ?", paymentModel.StatusConfirmed).
		Count(&confirmedPayments).Error; err != nil {
		logger.Error("Failed to count confirmed payments", err)
	}
	if err := h.DB.Model(&paymentModel.Payment{}).
		Where("status = ? AND deadline < ?", paymentModel.StatusPending, nowTime).
		Count(&overduePayments).Error; err != nil {
		logger.Error("Failed to count overdue payments", err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Report summary fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"total_bookings":     total,
			"by_status":          counters,
			"total_venues":       totalVenues,
			"active_venues":      activeVenues,
			"pending_payments":   pendingPayments,
			"confirmed_payments": confirmedPayments,
			"overdue_payments":   overduePayments,
		},
	})
}

// MonthlyRevenue returns confirmed payment totals for the current calendar
// month, or for the month given as ?month=YYYY-MM.
func (h *ReportController) MonthlyRevenue(c *fiber.Ctx) error {
	ref := time.Now()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Message: "Invalid month, expected YYYY-MM",
				Status:  fiber.StatusBadRequest,
			})
		}
		ref = parsed
	}

	start := now.With(ref).BeginningOfMonth()
	end := now.With(ref).EndOfMonth()

	var result struct {
		Total float64
		Count int64
	}
	err := h.DB.Model(&paymentModel.Payment{}).
		Select("coalesce(sum(amount), 0) as total, count(*) as count").
		Where("status = ? AND paid_at BETWEEN ? AND ?", paymentModel.StatusConfirmed, start, end).
		Scan(&result).Error
	if err != nil {
		logger.Error("Failed to compute monthly revenue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to build report",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Monthly revenue fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"month":         start.Format("2006-01"),
			"confirmed":     result.Count,
			"total_revenue": result.Total,
			"period_start":  start,
			"period_end":    end,
		},
	})
}
