package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

// UserModule serves the caller's profile and the admin user directory.
// Protected: GET/PUT /api/profile, POST /api/profile/avatar
// Admin: GET /api/users, GET /api/users/search
// Superadmin: PATCH /api/users/:id/role, PATCH /api/users/:id/permissions
type UserModule struct {
	Handler *handlers.UserHandler
	Authz   middleware.Authorizer
}

func NewUserModule(h *handlers.UserHandler, authz middleware.Authorizer) *UserModule {
	return &UserModule{Handler: h, Authz: authz}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Authz))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/avatar", middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByUserID(), nil), m.Handler.UploadAvatar)
	}

	admin := auth.Group("/users")
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("", m.Handler.List)
		// Search users via Elasticsearch
		admin.GET("/search", m.Handler.Search)
	}

	super := auth.Group("/users")
	super.Use(middleware.RequireRole(entity.RoleSuperAdmin))
	{
		super.PATCH("/:id/role", m.Handler.UpdateRole)
		super.PATCH("/:id/permissions", m.Handler.UpdatePermissions)
	}
}
