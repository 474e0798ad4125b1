package entity

import (
	"time"
)

// User is the aggregate root for accounts. Passwords are stored as bcrypt
// hashes in Password.
type User struct {
	ID          string
	Email       string
	Password    string
	Name        string
	AvatarURL   string
	Role        Role
	Permissions []string
	IsVerified  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role.Satisfies(RoleAdmin)
}

func (u *User) HasPermission(p string) bool {
	if u.Role == RoleSuperAdmin {
		return true
	}
	for _, have := range u.Permissions {
		if have == p {
			return true
		}
	}
	return false
}
