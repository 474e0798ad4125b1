package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AllowFunc returns true when the request bypasses the limiter.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP lets loopback and RFC 1918 clients through (health probes,
// sidecars, the seed job).
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// AllowSafeMethods exempts GET/HEAD requests, used on routes where only writes
// are worth limiting.
func AllowSafeMethods() AllowFunc {
	return func(c *gin.Context) bool {
		m := c.Request.Method
		return strings.EqualFold(m, http.MethodGet) || strings.EqualFold(m, http.MethodHead)
	}
}

// AnyOf combines allow functions.
func AnyOf(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}
