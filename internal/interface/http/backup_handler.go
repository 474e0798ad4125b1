package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/response"
)

type BackupHandler struct {
	Svc    *app.BackupService
	Logger *logrus.Logger
}

func NewBackupHandler(svc *app.BackupService, logger *logrus.Logger) *BackupHandler {
	return &BackupHandler{Svc: svc, Logger: logger}
}

type restoreRequest struct {
	Object string `json:"object" binding:"required"`
}

// Create POST /api/backup
func (h *BackupHandler) Create(c *gin.Context) {
	object, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusCreated, gin.H{"object": object}, "backup created", nil)
}

// List GET /api/backup
func (h *BackupHandler) List(c *gin.Context) {
	objects, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if objects == nil {
		objects = []string{}
	}
	response.Success(c, http.StatusOK, objects, "backups", nil)
}

// Restore POST /api/backup/restore
func (h *BackupHandler) Restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	if err := h.Svc.Restore(c.Request.Context(), middleware.ActorFrom(c), req.Object); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"restored": req.Object}, "backup restored", nil)
}
