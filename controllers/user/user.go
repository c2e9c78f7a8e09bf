package user

import (
	"errors"
	"io"

	"venue-booking/constants"
	"venue-booking/logger"
	userModel "venue-booking/models/user"
	"venue-booking/services/upload"
	"venue-booking/types"
	userTypes "venue-booking/types/user"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewUserController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *UserController {
	return &UserController{DB: db, Logger: asyncLogger}
}

// Profile returns the authenticated user's own record.
func (h *UserController) Profile(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		logger.Error("Failed to resolve current user", err)
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile fetched successfully",
		Status:  fiber.StatusOK,
		Data:    account,
	})
}

// UploadProfileImage replaces the authenticated user's avatar. JPEG or PNG
// only, at most 2 MB; the two failure modes return distinct messages.
func (h *UserController) UploadProfileImage(c *fiber.Ctx) error {
	account, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "No image file provided. Use the 'image' form field.",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := upload.ValidateProfileImage(fileHeader); err != nil {
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

	path, err := upload.SaveFile("uploaded_avatars", account.Uuid, fileHeader.Filename, fileBytes)
	if err != nil {
		logger.Error("Failed to store profile image", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to store uploaded file",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := h.DB.Model(account).Update("avatar", path).Error; err != nil {
		logger.Error("Failed to update avatar", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to update profile",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Profile image updated for user " + account.Uuid)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Profile image updated successfully",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"avatar": path,
		},
	})
}

// CreateAdmin creates an administrator account. The role is fixed server-side;
// it is never taken from the request body.
func (h *UserController) CreateAdmin(c *fiber.Ctx) error {
	actor, err := utils.CurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Unauthorized",
			Status:  fiber.StatusUnauthorized,
		})
	}

	var req userTypes.AdminCreateRequest
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

	var existing userModel.User
	err = h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Message: "An account with this email already exists",
			Status:  fiber.StatusConflict,
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Database error while checking existing user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	newAdmin := userModel.User{
		Uuid:         uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         userModel.RoleAdmin,
		Phone:        req.Phone,
		Permissions:  userModel.StringSlice{constants.PermAdminFull},
		CreatedByID:  &actor.ID,
	}

	if err := h.DB.Create(&newAdmin).Error; err != nil {
		logger.Error("Failed to create admin user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Admin user created. UUID: " + newAdmin.Uuid + " by " + actor.Uuid)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Administrator account created successfully",
		Status:  fiber.StatusCreated,
		Data:    newAdmin,
	})
}
