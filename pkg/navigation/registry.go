package navigation

// Role is the coarse authorization level of a signed-in user.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Rank orders roles so that a higher role satisfies routes guarded by a lower one.
// Unknown roles rank as 0 and satisfy nothing role-guarded.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperAdmin:
		return 3
	}
	return 0
}

func (r Role) Valid() bool { return r.Rank() > 0 }

// Satisfies reports whether r is allowed on a route that requires role req.
func (r Role) Satisfies(req Role) bool {
	if req == "" {
		return true
	}
	return r.Rank() >= req.Rank()
}

// ParseRole returns the role named by s.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}

// Route is one entry of the static route registry.
type Route struct {
	Path         string `json:"path" yaml:"path"`
	Title        string `json:"title" yaml:"title"`
	Icon         string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Public       bool   `json:"public" yaml:"public,omitempty"`
	RequiresAuth bool   `json:"requires_auth" yaml:"requires_auth,omitempty"`
	RequiredRole Role   `json:"required_role,omitempty" yaml:"required_role,omitempty"`
	Hidden       bool   `json:"hidden" yaml:"hidden,omitempty"`
}

// DefaultRoutes is the dashboard's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Title: "Home", Icon: "home", Public: true},
		{Path: "/login", Title: "Login", Public: true, Hidden: true},
		{Path: "/signup", Title: "Sign up", Public: true, Hidden: true},
		{Path: "/forgot-password", Title: "Forgot password", Public: true, Hidden: true},
		{Path: "/reset-password", Title: "Reset password", Public: true, Hidden: true},
		{Path: "/verify-email", Title: "Verify email", Public: true, Hidden: true},

		{Path: "/dashboard", Title: "Dashboard", Icon: "dashboard", RequiresAuth: true},
		{Path: "/rooms", Title: "Rooms", Icon: "bed", RequiresAuth: true},
		{Path: "/rooms/:id", Title: "Room details", RequiresAuth: true},
		{Path: "/bookings", Title: "My bookings", Icon: "calendar", RequiresAuth: true},
		{Path: "/bookings/new", Title: "New booking", RequiresAuth: true},
		{Path: "/payments", Title: "Payments", Icon: "credit-card", RequiresAuth: true},
		{Path: "/payments/success", Title: "Payment complete", RequiresAuth: true, Hidden: true},
		{Path: "/payments/cancel", Title: "Payment cancelled", RequiresAuth: true, Hidden: true},
		{Path: "/feedback", Title: "Feedback", Icon: "star", RequiresAuth: true},
		{Path: "/notifications", Title: "Notifications", Icon: "bell", RequiresAuth: true},
		{Path: "/profile", Title: "Profile", Icon: "user", RequiresAuth: true},

		{Path: "/admin", Title: "Admin", Icon: "shield", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/bookings", Title: "Bookings", Icon: "calendar", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/rooms", Title: "Rooms", Icon: "bed", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/housekeeping", Title: "Housekeeping", Icon: "broom", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/payments", Title: "Payments", Icon: "credit-card", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/feedback", Title: "Feedback", Icon: "star", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/reports", Title: "Reports", Icon: "chart", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/users", Title: "Users", Icon: "users", RequiresAuth: true, RequiredRole: RoleAdmin},
		{Path: "/admin/activity", Title: "Activity log", Icon: "list", RequiresAuth: true, RequiredRole: RoleAdmin},

		{Path: "/superadmin", Title: "Super admin", Icon: "crown", RequiresAuth: true, RequiredRole: RoleSuperAdmin},
		{Path: "/superadmin/backup", Title: "Backup & restore", Icon: "database", RequiresAuth: true, RequiredRole: RoleSuperAdmin},
		{Path: "/superadmin/roles", Title: "Roles & permissions", Icon: "key", RequiresAuth: true, RequiredRole: RoleSuperAdmin},
	}
}
