package user

import (
	"fmt"
	"regexp"
	"strings"

	userModel "venue-booking/models/user"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterRequest represents the self-registration payload. Role is limited
// to the requester roles; admin accounts are only created by an administrator.
type RegisterRequest struct {
	FullName   string `json:"full_name" validate:"required,min=1,max=255"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role" validate:"required,oneof=student staff external"`
	Phone      string `json:"phone" validate:"required,max=20"`
	RegNumber  string `json:"reg_number" validate:"omitempty,max=100"`
	Department string `json:"department" validate:"omitempty,max=255"`
	Address    string `json:"address" validate:"omitempty"`
}

func (r RegisterRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if r.Role == userModel.RoleAdmin || !userModel.ValidRole(r.Role) {
		return fmt.Errorf("role must be one of student, staff, external")
	}
	if r.Role == userModel.RoleStudent && strings.TrimSpace(r.RegNumber) == "" {
		return fmt.Errorf("reg_number is required for students")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// AdminCreateRequest represents the admin-user-creation payload. The created
// account is always an administrator; the role is not client-assignable.
type AdminCreateRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required,max=20"`
}

func (r AdminCreateRequest) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	if !emailPattern.MatchString(r.Email) {
		return fmt.Errorf("invalid email address")
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// ValidatePassword enforces the password policy: at least 8 characters with
// at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}
