package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/mailer"
	mailtpl "github.com/oksasatya/hotel-management/pkg/mailer/templates"
	"github.com/oksasatya/hotel-management/pkg/response"
)

// EmailHandler lets staff send a guest one of the stock templates or a
// free-form message through the email queue.
type EmailHandler struct {
	Mail     *app.Mailer
	Activity *app.ActivityService
	Logger   *logrus.Logger
}

func NewEmailHandler(mail *app.Mailer, activity *app.ActivityService, logger *logrus.Logger) *EmailHandler {
	return &EmailHandler{Mail: mail, Activity: activity, Logger: logger}
}

type sendEmailRequest struct {
	To       string         `json:"to" binding:"required,email"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
	Subject  string         `json:"subject" binding:"max=200"`
	Text     string         `json:"text"`
	HTML     string         `json:"html"`
}

// Send POST /api/admin/emails
func (h *EmailHandler) Send(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}

	job := mailer.EmailJob{To: req.To}
	switch {
	case req.Template != "":
		if !mailtpl.Known(req.Template) {
			response.Error[any](c, http.StatusBadRequest, "unknown template", nil)
			return
		}
		job.Template, job.Data = req.Template, req.Data
	case req.Subject == "" || (req.Text == "" && req.HTML == ""):
		response.Error[any](c, http.StatusBadRequest, "either template or subject with text/html is required", nil)
		return
	default:
		job.Subject, job.Text, job.HTML = req.Subject, req.Text, req.HTML
	}

	sent, err := h.Mail.Send(c.Request.Context(), job)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("failed to publish email job")
		}
		response.Error[any](c, http.StatusServiceUnavailable, "failed to enqueue", nil)
		return
	}
	if !sent {
		response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": false, "disabled": true}, "email sending disabled", nil)
		return
	}
	h.Activity.Record(c.Request.Context(), middleware.ActorFrom(c), "email.send", "email", req.To, map[string]any{"template": req.Template})
	response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": true}, "email enqueued", nil)
}
