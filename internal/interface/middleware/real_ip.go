package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// TrustProxies restricts which peers may set forwarding headers. With no
// proxies the peer address is the client IP. platform is "cloudflare",
// "google", a literal header name, or empty.
func TrustProxies(r *gin.Engine, proxies []string, platform string) error {
	if len(proxies) == 0 {
		proxies = nil
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "":
		r.TrustedPlatform = ""
	case "cloudflare":
		r.TrustedPlatform = gin.PlatformCloudflare
	case "google", "appengine":
		r.TrustedPlatform = gin.PlatformGoogleAppEngine
	default:
		r.TrustedPlatform = strings.TrimSpace(platform)
	}
	return nil
}

// RealIP stores the client IP resolved by gin under "real_ip". Forwarding
// headers count only when TrustProxies allowed them.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, c.ClientIP())
		c.Next()
	}
}
