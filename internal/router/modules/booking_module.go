package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type BookingModule struct {
	Handler *handlers.BookingHandler
	Authz   middleware.Authorizer
}

func NewBookingModule(h *handlers.BookingHandler, authz middleware.Authorizer) *BookingModule {
	return &BookingModule{Handler: h, Authz: authz}
}

func (m *BookingModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	b := rg.Group("/bookings")
	b.Use(middleware.Auth(m.Authz))
	b.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		b.POST("", middleware.RateLimit(rdb, 20, time.Minute, middleware.KeyByUserID(), nil), m.Handler.Create)
		b.GET("", m.Handler.List)
		b.GET("/:id", m.Handler.Get)
		b.POST("/:id/cancel-request", m.Handler.RequestCancel)
	}

	staff := b.Group("")
	staff.Use(middleware.RequireRole(entity.RoleAdmin), middleware.RequirePermission(entity.PermManageBookings))
	{
		staff.POST("/:id/confirm", m.Handler.Confirm())
		staff.POST("/:id/check-in", m.Handler.CheckIn())
		staff.POST("/:id/check-out", m.Handler.CheckOut())
		staff.POST("/:id/cancel", m.Handler.Cancel)
		staff.POST("/:id/cancel/approve", m.Handler.ApproveCancel())
		staff.POST("/:id/cancel/decline", m.Handler.DeclineCancel())
		staff.DELETE("/:id", m.Handler.Delete)
	}
}
