package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Authz   middleware.Authorizer
}

func NewAuthModule(h *handlers.AuthHandler, authz middleware.Authorizer) *AuthModule {
	return &AuthModule{Handler: h, Authz: authz}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Public endpoints with IP-based rate limits
	signupLimiter := middleware.RateLimit(rdb, 10, time.Hour, middleware.KeyByIP(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)
	verifyConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	a := rg.Group("/auth")
	a.POST("/signup", signupLimiter, m.Handler.Signup)
	a.POST("/login", loginLimiter, m.Handler.Login)
	a.POST("/refresh", refreshLimiter, m.Handler.Refresh)
	a.POST("/logout", middleware.OptionalAuth(m.Authz), m.Handler.Logout)
	a.GET("/session", m.Handler.Session)
	a.POST("/verify/confirm", verifyConfirmLimiter, m.Handler.VerifyConfirm)
	a.POST("/reset/init", resetInitLimiter, m.Handler.ResetInit)
	a.POST("/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)

	// Protected verify init with user-based rate limit
	a.POST("/verify/init",
		middleware.Auth(m.Authz),
		middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByUserID(), nil),
		m.Handler.VerifyInit,
	)
}
