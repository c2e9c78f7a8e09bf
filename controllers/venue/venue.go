package venue

import (
	"errors"
	"fmt"
	"io"

	"venue-booking/logger"
	userModel "venue-booking/models/user"
	venueModel "venue-booking/models/venue"
	"venue-booking/services/availability"
	"venue-booking/services/upload"
	"venue-booking/types"
	bookingTypes "venue-booking/types/booking"
	venueTypes "venue-booking/types/venue"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VenueController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewVenueController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *VenueController {
	return &VenueController{DB: db, Logger: asyncLogger}
}

// Index lists active venues. Administrators also see inactive ones.
func (h *VenueController) Index(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	query := h.DB.Order("name asc")
	if !account.IsAdmin() {
		query = query.Where("is_active = ?", true)
	}

	var venues []venueModel.Venue
	if err := query.Find(&venues).Error; err != nil {
		logger.Error("Failed to list venues", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to fetch venues",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Venues fetched successfully",
		Status:  fiber.StatusOK,
		Data:    venues,
	})
}

// Show returns a single venue by id.
func (h *VenueController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid venue id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var v venueModel.Venue
	if err := h.DB.First(&v, id).Error; err != nil {
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

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Venue fetched successfully",
		Status:  fiber.StatusOK,
		Data:    v,
	})
}

// Search returns the venues that can host the requested window: active, big
// enough, carrying every required amenity, and free of conflicting bookings.
func (h *VenueController) Search(c *fiber.Ctx) error {
	var req venueTypes.SearchRequest
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

	date, _ := bookingTypes.ParseDate(req.Date)
	start, _ := bookingTypes.ParseClock(req.StartTime)
	end, _ := bookingTypes.ParseClock(req.EndTime)

	criteria := availability.Criteria{
		Date:              date,
		StartMinute:       start,
		EndMinute:         end,
		RequiredCapacity:  req.RequiredCapacity,
		RequiredAmenities: req.RequiredAmenities,
	}

	venues, err := availability.Search(h.DB, criteria)
	if err != nil {
		logger.Error("Availability search failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Availability search failed",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Available venues fetched successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"count":  len(venues),
			"venues": venues,
		},
	})
}

// Store creates a venue. Admin only, enforced by route middleware.
func (h *VenueController) Store(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req venueTypes.VenueUpsertRequest
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

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	v := venueModel.Venue{
		Name:        req.Name,
		Description: req.Description,
		Capacity:    req.Capacity,
		Location:    req.Location,
		CostAmount:  req.CostAmount,
		IsActive:    isActive,
		Amenities:   userModel.StringSlice(req.Amenities),
		CreatedBy:   actor.Uuid,
	}

	if err := h.DB.Create(&v).Error; err != nil {
		logger.Error("Failed to create venue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create venue",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Venue created: " + v.Name)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Venue created successfully",
		Status:  fiber.StatusCreated,
		Data:    v,
	})
}

// Update edits an existing venue. Admin only.
func (h *VenueController) Update(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid venue id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var v venueModel.Venue
	if err := h.DB.First(&v, id).Error; err != nil {
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

	var req venueTypes.VenueUpsertRequest
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

	v.Name = req.Name
	v.Description = req.Description
	v.Capacity = req.Capacity
	v.Location = req.Location
	v.CostAmount = req.CostAmount
	v.Amenities = userModel.StringSlice(req.Amenities)
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	v.UpdatedBy = actor.Uuid

	if err := h.DB.Save(&v).Error; err != nil {
		logger.Error("Failed to update venue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update venue",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Venue updated: " + v.Name)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Venue updated successfully",
		Status:  fiber.StatusOK,
		Data:    v,
	})
}

// Destroy removes a venue permanently. The delete cascades through the
// venue's bookings and their payment records via the foreign key
// constraints; soft-disabling a venue is done through Update instead.
func (h *VenueController) Destroy(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid venue id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var v venueModel.Venue
	if err := h.DB.First(&v, id).Error; err != nil {
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

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&v).Error
	})
	if err != nil {
		logger.Error("Failed to delete venue", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to delete venue",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Venue deleted: " + v.Name + " by " + actor.Uuid)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Venue deleted successfully",
		Status:  fiber.StatusOK,
	})
}

// UploadImage replaces a venue's photo. JPEG or PNG only, at most 2MB, with
// distinct messages for the two failure modes.
func (h *VenueController) UploadImage(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid venue id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var v venueModel.Venue
	if err := h.DB.First(&v, id).Error; err != nil {
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "No image file provided. Use the 'image' form field.",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := upload.ValidateVenueImage(fileHeader); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, upload.ErrFileTooLarge) {
			status = fiber.StatusRequestEntityTooLarge
		}
		return c.Status(status).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  status,
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded image", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to read uploaded file",
			Status:  fiber.StatusInternalServerError,
		})
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded image", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to read uploaded file",
			Status:  fiber.StatusInternalServerError,
		})
	}

	path, err := upload.SaveFile("uploaded_venues", fmt.Sprintf("venue_%d", v.ID), fileHeader.Filename, fileBytes)
	if err != nil {
		logger.Error("Failed to store venue image", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to store uploaded file",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.DB.Model(&v).Updates(map[string]interface{}{
		"image_path": path,
		"updated_by": actor.Uuid,
	}).Error; err != nil {
		logger.Error("Failed to update venue image", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update venue",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Venue image updated: " + v.Name)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Venue image updated successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"image_path": path,
		},
	})
}
