package constants

// Role permissions
const (
	// Administrator permission
	PermAdminFull = "venue-booking.admin.full-permit"

	// Requester permissions
	PermStudentFull  = "venue-booking.student.full-permit"
	PermStaffFull    = "venue-booking.staff.full-permit"
	PermExternalFull = "venue-booking.external.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	RequesterPermissions = []string{
		PermStudentFull,
		PermStaffFull,
		PermExternalFull,
	}

	AllRolePermissions = []string{
		PermAdminFull,
		PermStudentFull,
		PermStaffFull,
		PermExternalFull,
	}
)

// RolePermission maps a user role to its permission string.
func RolePermission(role string) string {
	switch role {
	case "admin":
		return PermAdminFull
	case "student":
		return PermStudentFull
	case "staff":
		return PermStaffFull
	case "external":
		return PermExternalFull
	default:
		return ""
	}
}
