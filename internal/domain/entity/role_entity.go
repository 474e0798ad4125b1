package entity

import "github.com/oksasatya/hotel-management/pkg/navigation"

// Role is shared with the navigation registry so route guards and the
// user domain agree on names and ordering.
type Role = navigation.Role

const (
	RoleUser       = navigation.RoleUser
	RoleAdmin      = navigation.RoleAdmin
	RoleSuperAdmin = navigation.RoleSuperAdmin
)

// Permission flags grant admins access to individual areas on top of their role.
const (
	PermManageRooms        = "manage_rooms"
	PermManageBookings     = "manage_bookings"
	PermManagePayments     = "manage_payments"
	PermViewReports        = "view_reports"
	PermManageFeedback     = "manage_feedback"
	PermManageHousekeeping = "manage_housekeeping"
)

var knownPermissions = map[string]struct{}{
	PermManageRooms:        {},
	PermManageBookings:     {},
	PermManagePayments:     {},
	PermViewReports:        {},
	PermManageFeedback:     {},
	PermManageHousekeeping: {},
}

// IsKnownPermission reports whether p is one of the permission flags above.
func IsKnownPermission(p string) bool {
	_, ok := knownPermissions[p]
	return ok
}
