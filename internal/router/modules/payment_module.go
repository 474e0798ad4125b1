package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type PaymentModule struct {
	Handler *handlers.PaymentHandler
	Authz   middleware.Authorizer
}

func NewPaymentModule(h *handlers.PaymentHandler, authz middleware.Authorizer) *PaymentModule {
	return &PaymentModule{Handler: h, Authz: authz}
}

func (m *PaymentModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	p := rg.Group("/payments")
	p.Use(middleware.Auth(m.Authz))
	p.Use(middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		p.POST("/checkout", m.Handler.Checkout)
		p.POST("/confirm", m.Handler.Confirm)
		p.GET("", m.Handler.List)
	}
}
