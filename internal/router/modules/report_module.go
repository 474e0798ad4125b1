package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

type ReportModule struct {
	Handler *handlers.ReportHandler
	Authz   middleware.Authorizer
}

func NewReportModule(h *handlers.ReportHandler, authz middleware.Authorizer) *ReportModule {
	return &ReportModule{Handler: h, Authz: authz}
}

func (m *ReportModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/")
	g.Use(
		middleware.Auth(m.Authz),
		middleware.RequireRole(entity.RoleAdmin),
		middleware.RequirePermission(entity.PermViewReports),
	)
	{
		g.GET("/reports/dashboard", m.Handler.Dashboard)
		g.GET("/reports/revenue", m.Handler.Revenue)
		g.GET("/activity", m.Handler.ActivityLog)
	}
}
