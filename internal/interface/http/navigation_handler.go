package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/navigation"
	"github.com/oksasatya/hotel-management/pkg/response"
)

// NavigationHandler exposes the dashboard route registry. Every endpoint is
// optional-auth: anonymous callers are evaluated as unauthenticated.
type NavigationHandler struct {
	Nav *navigation.Manager
}

func NewNavigationHandler(nav *navigation.Manager) *NavigationHandler {
	if nav == nil {
		nav = navigation.Default()
	}
	return &NavigationHandler{Nav: nav}
}

func userContext(c *gin.Context) navigation.UserContext {
	uid := c.GetString(middleware.CtxUserIDKey)
	if uid == "" {
		return navigation.UserContext{}
	}
	return navigation.UserContext{Authenticated: true, Role: navigation.Role(c.GetString(middleware.CtxUserRoleKey))}
}

// Routes GET /api/navigation
func (h *NavigationHandler) Routes(c *gin.Context) {
	uc := userContext(c)
	response.Success(c, http.StatusOK, h.Nav.NavigationRoutes(uc), "navigation", gin.H{
		"authenticated": uc.Authenticated,
		"home":          navigation.LandingFor(uc),
	})
}

// Check GET /api/navigation/check?path=
func (h *NavigationHandler) Check(c *gin.Context) {
	path, ok := c.GetQuery("path")
	if !ok || path == "" {
		response.Error[any](c, http.StatusBadRequest, "path is required", nil)
		return
	}
	response.Success(c, http.StatusOK, h.Nav.CheckRoutePermission(path, userContext(c)), "decision", nil)
}

// Breadcrumbs GET /api/navigation/breadcrumbs?path=
func (h *NavigationHandler) Breadcrumbs(c *gin.Context) {
	path, ok := c.GetQuery("path")
	if !ok || path == "" {
		response.Error[any](c, http.StatusBadRequest, "path is required", nil)
		return
	}
	response.Success(c, http.StatusOK, h.Nav.Breadcrumbs(path), "breadcrumbs", nil)
}
