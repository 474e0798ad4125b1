package application

import "github.com/oksasatya/hotel-management/internal/domain/entity"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID      string
	Role        entity.Role
	Permissions []string
	IP          string
	UserAgent   string
}

func (a Actor) IsAdmin() bool { return a.Role.Satisfies(entity.RoleAdmin) }

func (a Actor) IsSuperAdmin() bool { return a.Role == entity.RoleSuperAdmin }

// Can reports whether the actor may act on something owned by ownerID.
func (a Actor) Can(ownerID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == ownerID)
}
