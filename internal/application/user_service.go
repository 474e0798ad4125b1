package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

// UserService is the admin side of account management.
type UserService struct {
	Users         repo.UserRepository
	Sessions      repo.SessionStore
	Index         provider.SearchIndex
	Notifications *NotificationService
	Activity      *ActivityService
	Logger        *logrus.Logger
}

func NewUserService(users repo.UserRepository, sessions repo.SessionStore, search provider.SearchIndex, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Sessions: sessions, Index: search, Logger: logger}
}

func (s *UserService) List(ctx context.Context, f repo.UserFilter) ([]*entity.User, int, error) {
	if f.Role != "" && !f.Role.Valid() {
		return nil, 0, ErrUnknownRole
	}
	return s.Users.List(ctx, f)
}

// Search queries the users index. Without a cluster it degrades to a
// database name/email filter.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if size <= 0 || size > 50 {
		size = 20
	}
	if !searchEnabled(s.Index) {
		users, _, err := s.Users.List(ctx, repo.UserFilter{Query: q, Limit: size})
		if err != nil {
			return nil, err
		}
		out := make([]map[string]any, 0, len(users))
		for _, u := range users {
			out = append(out, map[string]any{"id": u.ID, "email": u.Email, "name": u.Name, "role": u.Role})
		}
		return out, nil
	}
	return s.Index.SearchUsers(ctx, q, size)
}

func searchEnabled(x provider.SearchIndex) bool {
	if x == nil {
		return false
	}
	if e, ok := x.(interface{ Enabled() bool }); ok {
		return e.Enabled()
	}
	return true
}

func (s *UserService) get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) afterChange(ctx context.Context, u *entity.User, fields map[string]any) {
	if err := s.Sessions.Patch(ctx, u.ID, fields); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("patch session failed")
	}
	if s.Index != nil {
		if err := s.Index.IndexUser(ctx, u); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
		}
	}
}

// UpdateRole is reserved to superadmins. The live session is patched so the
// next probe reflects the new role without a fresh login.
func (s *UserService) UpdateRole(ctx context.Context, actor Actor, id string, role entity.Role) (*entity.User, error) {
	if !actor.IsSuperAdmin() {
		return nil, ErrForbidden
	}
	if !role.Valid() {
		return nil, ErrUnknownRole
	}
	if id == actor.UserID && role != entity.RoleSuperAdmin {
		return nil, ErrSelfDemotion
	}
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := u.Role
	if prev == role {
		return u, nil
	}
	if err := s.Users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Role = role
	s.afterChange(ctx, u, map[string]any{"role": string(role)})
	s.Notifications.Notify(ctx, u.ID, fmt.Sprintf("Your role is now %s", role), entity.NotifyInfo, "")
	s.Activity.Record(ctx, actor, "user.update_role", "user", u.ID, map[string]any{"from": prev, "to": role})
	return u, nil
}

// UpdatePermissions replaces the permission flags of a user. Flags are
// de-duplicated and kept sorted.
func (s *UserService) UpdatePermissions(ctx context.Context, actor Actor, id string, perms []string) (*entity.User, error) {
	if !actor.IsSuperAdmin() {
		return nil, ErrForbidden
	}
	seen := make(map[string]struct{}, len(perms))
	clean := make([]string, 0, len(perms))
	for _, p := range perms {
		if !entity.IsKnownPermission(p) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPermission, p)
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		clean = append(clean, p)
	}
	sort.Strings(clean)

	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Users.UpdatePermissions(ctx, id, clean); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.Permissions = clean
	s.afterChange(ctx, u, map[string]any{"permissions": clean})
	s.Activity.Record(ctx, actor, "user.update_permissions", "user", u.ID, map[string]any{"permissions": clean})
	return u, nil
}
