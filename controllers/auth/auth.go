package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"venue-booking/constants"
	"venue-booking/logger"
	userModel "venue-booking/models/user"
	"venue-booking/types"
	userTypes "venue-booking/types/user"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{DB: db, Logger: asyncLogger}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	isProduction := os.Getenv("APP_ENV") == "production"

	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: false,
		Secure:   isProduction, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

// Register creates a requester account. The role is limited to student,
// staff, or external; administrator accounts come only from the admin
// user-creation flow.
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req userTypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: "Invalid request body",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		logger.Error(err.Error(), nil)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	// Reject duplicate email before hashing
	var existing userModel.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
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

	newUser := userModel.User{
		Uuid:         uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		Phone:        req.Phone,
		Permissions:  userModel.StringSlice{constants.RolePermission(req.Role)},
	}
	if req.RegNumber != "" {
		newUser.RegNumber = &req.RegNumber
	}
	if req.Department != "" {
		newUser.Department = &req.Department
	}
	if req.Address != "" {
		newUser.Address = &req.Address
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		logger.Error("Failed to create user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to create account",
			Status:  fiber.StatusInternalServerError,
		})
	}

	token, err := utils.GenerateToken(&newUser)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Account created but failed to issue token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("User registered successfully. UUID: " + newUser.Uuid)
	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Message: "Account created successfully",
		Status:  fiber.StatusCreated,
		Token:   token,
		Data:    newUser,
	})
}

// Login verifies credentials and issues a bearer token.
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req userTypes.LoginRequest
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

	var account userModel.User
	if err := h.DB.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message: "Invalid email or password",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Database error during login", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Database error",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message: "Invalid email or password",
			Status:  fiber.StatusUnauthorized,
		})
	}

	token, err := utils.GenerateToken(&account)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Message: "Failed to issue token",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.setSecureCookie(c, "access", token, 8*60*60) // 8 hours

	logEntry := utils.CreateSanitizedLogEntry(c)
	h.Logger.Log(logEntry)

	currentTime := time.Now().Format("2006-01-02 03:04:05 PM")
	logger.Success(fmt.Sprintf("User logged in successfully. uuid: %s at %s", account.Uuid, currentTime))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Login successful",
		Status:  fiber.StatusOK,
		Token:   token,
		Data:    account,
	})
}

// LogOut clears the access cookie. Bearer tokens simply expire.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	h.setSecureCookie(c, "access", "", -1) // Expire immediately

	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
	})
}
