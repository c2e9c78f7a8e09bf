package services

import (
	"venue-booking/constants"
	"venue-booking/middleware"
	bookingModel "venue-booking/models/booking"
	userModel "venue-booking/models/user"

	"github.com/gofiber/fiber/v2"
)

// PolicyService centralizes booking authorization decisions so ownership
// rules are not re-asserted ad hoc at every call site.
type PolicyService struct{}

func NewPolicyService() *PolicyService {
	return &PolicyService{}
}

// CheckPermission checks if the current user has a specific permission
func (ps *PolicyService) CheckPermission(c *fiber.Ctx, permission string) bool {
	return middleware.CheckPermissionInController(c, permission)
}

// IsAdmin checks if user has admin privileges
func (ps *PolicyService) IsAdmin(c *fiber.Ctx) bool {
	return ps.CheckPermission(c, constants.PermAdminFull)
}

// CanViewBooking: the owner or an administrator may view a booking.
func (ps *PolicyService) CanViewBooking(actor *userModel.User, b *bookingModel.Booking) bool {
	return actor.IsAdmin() || b.UserID == actor.ID
}

// CanActOnBooking: cancel, evidence upload, payment submission, and feedback
// are owner-only actions, never admin-overridable.
func (ps *PolicyService) CanActOnBooking(actor *userModel.User, b *bookingModel.Booking) bool {
	return b.UserID == actor.ID
}
