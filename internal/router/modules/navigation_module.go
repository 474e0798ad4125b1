package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type NavigationModule struct {
	Handler *handlers.NavigationHandler
	Authz   middleware.Authorizer
}

func NewNavigationModule(h *handlers.NavigationHandler, authz middleware.Authorizer) *NavigationModule {
	return &NavigationModule{Handler: h, Authz: authz}
}

func (m *NavigationModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/navigation")
	g.Use(
		middleware.OptionalAuth(m.Authz),
		middleware.RateLimit(container.GetRedis(), 600, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
	)
	{
		g.GET("", m.Handler.Routes)
		g.GET("/check", m.Handler.Check)
		g.GET("/breadcrumbs", m.Handler.Breadcrumbs)
	}
}
