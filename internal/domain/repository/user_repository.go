package repository

import (
	"context"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

type UserFilter struct {
	Query  string
	Role   entity.Role
	Limit  int
	Offset int
}

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	SetVerified(ctx context.Context, id string) error
	UpdateRole(ctx context.Context, id string, role entity.Role) error
	UpdatePermissions(ctx context.Context, id string, perms []string) error
	List(ctx context.Context, f UserFilter) ([]*entity.User, int, error)
	ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.User, error)
}
