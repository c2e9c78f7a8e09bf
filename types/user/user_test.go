package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegister() RegisterRequest {
	return RegisterRequest{
		FullName:  "Asha Mrema",
		Email:     "asha@example.ac.tz",
		Password:  "s3curePass",
		Role:      "student",
		Phone:     "+255700000001",
		RegNumber: "REG-2026-0042",
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	assert.NoError(t, validRegister().Validate())

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"blank name", func(r *RegisterRequest) { r.FullName = " " }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "ab1" }},
		{"admin role not self-assignable", func(r *RegisterRequest) { r.Role = "admin" }},
		{"unknown role", func(r *RegisterRequest) { r.Role = "superuser" }},
		{"student without reg number", func(r *RegisterRequest) { r.RegNumber = "" }},
		{"blank phone", func(r *RegisterRequest) { r.Phone = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegister()
			tt.mutate(&r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestRegisterRequestStaffNeedsNoRegNumber(t *testing.T) {
	r := validRegister()
	r.Role = "staff"
	r.RegNumber = ""
	assert.NoError(t, r.Validate())

	r.Role = "external"
	assert.NoError(t, r.Validate())
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("abcdef12"))
	assert.Error(t, ValidatePassword("short1"), "too short")
	assert.Error(t, ValidatePassword("abcdefgh"), "no digit")
	assert.Error(t, ValidatePassword("12345678"), "no letter")
}

func TestLoginRequestValidate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "a@b.co", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "a@b.co"}.Validate())
}
