package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type EmailModule struct {
	Handler *handlers.EmailHandler
	Authz   middleware.Authorizer
}

func NewEmailModule(h *handlers.EmailHandler, authz middleware.Authorizer) *EmailModule {
	return &EmailModule{Handler: h, Authz: authz}
}

func (m *EmailModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/admin")
	auth.Use(middleware.Auth(m.Authz), middleware.RequireRole(entity.RoleAdmin))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("/emails", m.Handler.Send)
	}
}
