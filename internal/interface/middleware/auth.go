package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/pkg/response"
)

// Authorizer resolves an access token to its live Redis session.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (*repository.Session, error)
}

func setSession(c *gin.Context, s *repository.Session) {
	c.Set(CtxUserIDKey, s.UserID)
	c.Set(CtxUserRoleKey, s.Role)
	c.Set(CtxUserPermsKey, s.Permissions)
	c.Set(CtxUserEmailKey, s.Email)
	c.Set(CtxUserNameKey, s.Name)
}

// Auth validates the access token and ensures an active session exists in Redis.
// It sets userID, userRole, userPermissions, userEmail and userName in the Gin context on success.
func Auth(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := AccessToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		sess, err := a.Authorize(c.Request.Context(), token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "session not found", nil)
			return
		}
		setSession(c, sess)
		c.Next()
	}
}

// OptionalAuth attaches the session when the request carries a valid one and
// lets anonymous requests through untouched.
func OptionalAuth(a Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := AccessToken(c); token != "" {
			if sess, err := a.Authorize(c.Request.Context(), token); err == nil {
				setSession(c, sess)
			}
		}
		c.Next()
	}
}

// RequireRole rejects callers whose role ranks below role. Must run after Auth.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		have := entity.Role(c.GetString(CtxUserRoleKey))
		if !have.Valid() || !have.Satisfies(role) {
			response.Abort(c, http.StatusForbidden, "forbidden", gin.H{"required_role": role})
			return
		}
		c.Next()
	}
}

// RequirePermission guards admin areas behind a permission flag. Superadmins
// always pass; admins pass when they hold the flag or have no flags at all
// (unrestricted admin).
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a := ActorFrom(c)
		if !allowed(a.Role, a.Permissions, perm) {
			response.Abort(c, http.StatusForbidden, "forbidden", gin.H{"required_permission": perm})
			return
		}
		c.Next()
	}
}

func allowed(role entity.Role, perms []string, perm string) bool {
	switch role {
	case entity.RoleSuperAdmin:
		return true
	case entity.RoleAdmin:
		if len(perms) == 0 {
			return true
		}
		for _, p := range perms {
			if p == perm {
				return true
			}
		}
	}
	return false
}
