package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/response"
)

// Stream event names.
const (
	EventConnected    = "connected"
	EventNotification = "notification"
	EventHeartbeat    = "heartbeat"
)

type NotificationHandler struct {
	Svc       *app.NotificationService
	Logger    *logrus.Logger
	Heartbeat time.Duration
}

func NewNotificationHandler(svc *app.NotificationService, logger *logrus.Logger, heartbeat time.Duration) *NotificationHandler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &NotificationHandler{Svc: svc, Logger: logger, Heartbeat: heartbeat}
}

type createNotificationRequest struct {
	Message string `json:"message" binding:"required,max=500"`
	Type    string `json:"type" binding:"notiftype"`
	Link    string `json:"link" binding:"max=300"`
}

// List GET /api/notifications?unread=
func (h *NotificationHandler) List(c *gin.Context) {
	unread, _ := strconv.ParseBool(c.Query("unread"))
	list, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), unread)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if list == nil {
		list = []*entity.Notification{}
	}
	response.Success(c, http.StatusOK, list, "notifications", nil)
}

// Create POST /api/notifications. Clients persist their own toasts here.
func (h *NotificationHandler) Create(c *gin.Context) {
	var req createNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	typ := entity.NotificationType(req.Type)
	if typ == "" {
		typ = entity.NotifyInfo
	}
	n, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.Message, typ, req.Link)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, n, "notification created", nil)
}

// MarkRead PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Svc.MarkRead(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"read": true}, "notification marked as read", nil)
}

// MarkAllRead POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.Svc.MarkAllRead(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"updated": n}, "all notifications marked as read", nil)
}

// Delete DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "notification deleted", nil)
}

// Stream GET /api/notifications/stream (Server-Sent Events). Sends
// "connected" once, then "notification" per new notification of the caller
// and "heartbeat" on a timer until the client goes away.
func (h *NotificationHandler) Stream(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	ctx := c.Request.Context()

	events, err := h.Svc.Subscribe(ctx, uid)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	h.emit(c, sse.Event{Event: EventConnected, Data: gin.H{"user_id": uid, "timestamp": time.Now().UTC()}})

	ticker := time.NewTicker(h.Heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.emit(c, sse.Event{Event: EventHeartbeat, Data: gin.H{"timestamp": time.Now().UTC()}})
		case n, ok := <-events:
			if !ok {
				return
			}
			h.emit(c, sse.Event{Event: EventNotification, Id: n.ID, Data: n})
		}
	}
}

func (h *NotificationHandler) emit(c *gin.Context, ev sse.Event) {
	c.Render(-1, ev)
	c.Writer.Flush()
}
