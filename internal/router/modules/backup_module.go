package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type BackupModule struct {
	Handler *handlers.BackupHandler
	Authz   middleware.Authorizer
}

func NewBackupModule(h *handlers.BackupHandler, authz middleware.Authorizer) *BackupModule {
	return &BackupModule{Handler: h, Authz: authz}
}

func (m *BackupModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/backup")
	g.Use(middleware.Auth(m.Authz), middleware.RequireRole(entity.RoleSuperAdmin))
	g.Use(middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUserID(), middleware.AllowSafeMethods()))
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.POST("/restore", m.Handler.Restore)
	}
}
