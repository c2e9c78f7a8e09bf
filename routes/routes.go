package routes

import (
	"venue-booking/constants"
	"venue-booking/controllers/auth"
	"venue-booking/controllers/booking"
	"venue-booking/controllers/feedback"
	"venue-booking/controllers/payment"
	"venue-booking/controllers/report"
	"venue-booking/controllers/user"
	"venue-booking/controllers/venue"
	"venue-booking/logger"
	"venue-booking/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db, asyncLogger)
	userController := user.NewUserController(db, asyncLogger)
	venueController := venue.NewVenueController(db, asyncLogger)
	bookingController := booking.NewBookingController(db, asyncLogger)
	paymentController := payment.NewPaymentController(db, asyncLogger)
	feedbackController := feedback.NewFeedbackController(db, asyncLogger)
	reportController := report.NewReportController(db, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "venue-booking",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)

	/*=============================================================================
	| Account Routes
	===============================================================================*/
	account := api.Group("/auth").Use(middleware.RequireAnyPermission())
	account.Get("/profile", userController.Profile)
	account.Post("/profile-image", userController.UploadProfileImage)
	account.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Venue Routes
	===============================================================================*/
	venueGroup := api.Group("/venues")

	venueGroup.Get("/", middleware.RequireAnyPermission(), venueController.Index)
	venueGroup.Post("/search", middleware.RequireAnyPermission(), venueController.Search)
	venueGroup.Get("/:id", middleware.RequireAnyPermission(), venueController.Show)
	venueGroup.Get("/:venue_id/feedback", middleware.RequireAnyPermission(), feedbackController.Index)

	venueGroup.Post("/", middleware.RequirePermissions(
		constants.PermAdminFull,
	), venueController.Store)

	venueGroup.Put("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
	), venueController.Update)

	venueGroup.Delete("/:id", middleware.RequirePermissions(
		constants.PermAdminFull,
	), venueController.Destroy)

	venueGroup.Post("/:id/image", middleware.RequirePermissions(
		constants.PermAdminFull,
	), venueController.UploadImage)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings")

	bookingGroup.Post("/", middleware.RequirePermissions(
		constants.RequesterPermissions...,
	), bookingController.Store)

	bookingGroup.Get("/", middleware.RequireAnyPermission(), bookingController.Index)
	bookingGroup.Get("/receipts/:request_id", middleware.RequireAnyPermission(), bookingController.ReceiptParseStatus)
	bookingGroup.Get("/:code", middleware.RequireAnyPermission(), bookingController.Show)

	bookingGroup.Post("/:code/cancel", middleware.RequirePermissions(
		constants.RequesterPermissions...,
	), bookingController.Cancel)

	bookingGroup.Post("/:code/evidence", middleware.RequirePermissions(
		constants.RequesterPermissions...,
	), bookingController.UploadEvidence)

	// Administrator decisions
	bookingGroup.Post("/:code/approve", middleware.RequirePermissions(
		constants.PermAdminFull,
	), bookingController.Approve)

	bookingGroup.Post("/:code/reject", middleware.RequirePermissions(
		constants.PermAdminFull,
	), bookingController.Reject)

	bookingGroup.Post("/:code/complete", middleware.RequirePermissions(
		constants.PermAdminFull,
	), bookingController.Complete)

	bookingGroup.Post("/:code/feedback", middleware.RequirePermissions(
		constants.RequesterPermissions...,
	), feedbackController.Store)

	/*=============================================================================
	| Payment Routes
	===============================================================================*/
	paymentGroup := api.Group("/payments")

	paymentGroup.Get("/", middleware.RequireAnyPermission(), paymentController.Index)

	paymentGroup.Post("/reconcile", middleware.RequirePermissions(
		constants.PermAdminFull,
	), paymentController.Reconcile)

	paymentGroup.Get("/:code", middleware.RequireAnyPermission(), paymentController.Show)

	paymentGroup.Post("/:code/submit", middleware.RequirePermissions(
		constants.RequesterPermissions...,
	), paymentController.Submit)

	paymentGroup.Post("/:code/confirm", middleware.RequirePermissions(
		constants.PermAdminFull,
	), paymentController.Confirm)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin").Use(middleware.RequirePermissions(
		constants.PermAdminFull,
	))
	adminGroup.Post("/users", userController.CreateAdmin)
	adminGroup.Get("/reports/summary", reportController.Summary)
	adminGroup.Get("/reports/revenue", reportController.MonthlyRevenue)
}
