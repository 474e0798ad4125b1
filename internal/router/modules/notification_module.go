package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Authz   middleware.Authorizer
}

func NewNotificationModule(h *handlers.NotificationHandler, authz middleware.Authorizer) *NotificationModule {
	return &NotificationModule{Handler: h, Authz: authz}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	n := rg.Group("/notifications")
	n.Use(middleware.Auth(m.Authz))
	{
		// long-lived; reconnects are limited, not the stream itself
		n.GET("/stream", middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil), m.Handler.Stream)
	}

	limited := n.Group("")
	limited.Use(middleware.RateLimit(rdb, 240, time.Minute, middleware.KeyByUserID(), nil))
	{
		limited.GET("", m.Handler.List)
		limited.POST("", m.Handler.Create)
		limited.POST("/read-all", m.Handler.MarkAllRead)
		limited.PATCH("/:id/read", m.Handler.MarkRead)
		limited.DELETE("/:id", m.Handler.Delete)
	}
}
