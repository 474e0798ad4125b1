package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type FeedbackModule struct {
	Handler *handlers.FeedbackHandler
	Authz   middleware.Authorizer
}

func NewFeedbackModule(h *handlers.FeedbackHandler, authz middleware.Authorizer) *FeedbackModule {
	return &FeedbackModule{Handler: h, Authz: authz}
}

func (m *FeedbackModule) Register(rg *gin.RouterGroup) {
	f := rg.Group("/feedback")
	f.Use(middleware.Auth(m.Authz))
	{
		f.POST("", middleware.RateLimit(container.GetRedis(), 10, time.Hour, middleware.KeyByUserID(), nil), m.Handler.Submit)
	}

	staff := f.Group("")
	staff.Use(middleware.RequireRole(entity.RoleAdmin), middleware.RequirePermission(entity.PermManageFeedback))
	{
		staff.GET("", m.Handler.List)
		staff.DELETE("/:id", m.Handler.Delete)
	}
}
