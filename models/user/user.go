package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// User roles
const (
	RoleStudent  = "student"
	RoleStaff    = "staff"
	RoleExternal = "external"
	RoleAdmin    = "admin"
)

// User model for venue booking principals
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Uuid         string  `gorm:"type:varchar(255);not null;unique" json:"uuid"`
	FullName     string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;index" json:"role"`
	Phone        string  `gorm:"type:varchar(20);not null" json:"phone"`
	RegNumber    *string `gorm:"type:varchar(100)" json:"reg_number,omitempty"` // students only
	Department   *string `gorm:"type:varchar(255)" json:"department,omitempty"` // staff only
	Address      *string `gorm:"type:text" json:"address,omitempty"`            // external users
	Avatar       string  `gorm:"type:varchar(2048)" json:"avatar"`

	CreatedByID *uint       `gorm:"index" json:"created_by_id,omitempty"`
	Permissions StringSlice `gorm:"type:json" json:"permissions"` // JSON column holding permission strings

	// Self-referencing relationship for admin-created accounts
	CreatedByUser *User `gorm:"foreignKey:CreatedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"created_by,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether the given role is part of the fixed role set.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleStaff, RoleExternal, RoleAdmin:
		return true
	default:
		return false
	}
}

// StringSlice is a custom type to handle JSON serialization for PostgreSQL
type StringSlice []string

// Scan implements the Scanner interface for database deserialization
func (ss *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*ss = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, ss)
}

// Value implements the driver Valuer interface for database serialization
func (ss StringSlice) Value() (driver.Value, error) {
	if ss == nil {
		return nil, nil
	}
	return json.Marshal(ss)
}
