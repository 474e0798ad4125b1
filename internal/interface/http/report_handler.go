package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/pkg/response"
	"github.com/oksasatya/hotel-management/pkg/validation"
)

type ReportHandler struct {
	Reports  *app.ReportService
	Activity *app.ActivityService
	Logger   *logrus.Logger
}

func NewReportHandler(reports *app.ReportService, activity *app.ActivityService, logger *logrus.Logger) *ReportHandler {
	return &ReportHandler{Reports: reports, Activity: activity, Logger: logger}
}

type revenueQuery struct {
	From string `form:"from" binding:"omitempty,date"`
	To   string `form:"to" binding:"omitempty,date"`
}

type activityQuery struct {
	UserID string `form:"user_id"`
	Action string `form:"action"`
	Entity string `form:"entity"`
	Since  string `form:"since"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type revenuePoint struct {
	Day    string `json:"day"`
	Amount int64  `json:"amount"`
}

// Dashboard GET /api/reports/dashboard
func (h *ReportHandler) Dashboard(c *gin.Context) {
	d, err := h.Reports.Dashboard(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, d, "dashboard", nil)
}

// Revenue GET /api/reports/revenue?from=&to=
func (h *ReportHandler) Revenue(c *gin.Context) {
	var q revenueQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	var from, to time.Time
	if q.From != "" {
		from, _ = validation.ParseDate(q.From)
	}
	if q.To != "" {
		to, _ = validation.ParseDate(q.To)
	}
	points, err := h.Reports.Revenue(c.Request.Context(), from, to)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]revenuePoint, 0, len(points))
	var total int64
	for _, p := range points {
		out = append(out, revenuePoint{Day: p.Day.Format(entity.DateLayout), Amount: p.Amount})
		total += p.Amount
	}
	response.Success(c, http.StatusOK, out, "revenue", gin.H{"total": total})
}

// ActivityLog GET /api/activity
func (h *ReportHandler) ActivityLog(c *gin.Context) {
	var q activityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := entity.ActivityFilter{UserID: q.UserID, Action: q.Action, Entity: q.Entity, Limit: q.Limit, Offset: q.Offset}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if q.Since != "" {
		if t, err := time.Parse(time.RFC3339, q.Since); err == nil {
			f.Since = t
		} else {
			f.Since, _ = validation.ParseDate(q.Since)
		}
	}
	logs, err := h.Activity.Query(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if logs == nil {
		logs = []entity.ActivityLog{}
	}
	response.Success(c, http.StatusOK, logs, "activity", response.PageMeta{Total: len(logs), Limit: f.Limit, Offset: f.Offset})
}
