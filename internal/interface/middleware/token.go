package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

// Gin context keys populated by Auth and OptionalAuth.
const (
	CtxUserIDKey      = "userID"
	CtxUserRoleKey    = "userRole"
	CtxUserPermsKey   = "userPermissions"
	CtxUserEmailKey   = "userEmail"
	CtxUserNameKey    = "userName"
	CtxRealIPKey      = "real_ip"
	CtxRequestIDKey   = "request_id"
	HeaderRequestID   = "X-Request-ID"
	authorizationType = "bearer "
)

// AccessToken returns the access token of the request: the access_token
// cookie, or a Bearer Authorization header for non-browser clients.
func AccessToken(c *gin.Context) string {
	if tok, err := c.Cookie(helpers.AccessCookie); err == nil && tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > len(authorizationType) && strings.EqualFold(h[:len(authorizationType)], authorizationType) {
		return strings.TrimSpace(h[len(authorizationType):])
	}
	return ""
}

// ClientIP prefers the address resolved by RealIP.
func ClientIP(c *gin.Context) string {
	return ipFromCtx(c)
}

// ActorFrom builds the service-layer caller from the request. Anonymous
// requests yield an Actor without user id or role.
func ActorFrom(c *gin.Context) application.Actor {
	a := application.Actor{
		UserID:    c.GetString(CtxUserIDKey),
		Role:      entity.Role(c.GetString(CtxUserRoleKey)),
		IP:        ipFromCtx(c),
		UserAgent: c.Request.UserAgent(),
	}
	if perms, ok := c.Get(CtxUserPermsKey); ok {
		a.Permissions, _ = perms.([]string)
	}
	return a
}
