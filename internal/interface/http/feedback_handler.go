package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/response"
)

type FeedbackHandler struct {
	Svc    *app.FeedbackService
	Logger *logrus.Logger
}

func NewFeedbackHandler(svc *app.FeedbackService, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{Svc: svc, Logger: logger}
}

type ratingRequest struct {
	Rating  int    `json:"rating" binding:"required,rating"`
	Comment string `json:"comment" binding:"max=2000"`
}

type pageQuery struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Submit POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	f, err := h.Svc.Submit(c.Request.Context(), middleware.ActorFrom(c), req.Rating, req.Comment)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toFeedback(f), "thanks for your feedback", nil)
}

// List GET /api/feedback (admin)
func (h *FeedbackHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = 50
	}
	list, err := h.Svc.ListFeedback(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]feedbackDTO, 0, len(list))
	for _, f := range list {
		out = append(out, toFeedback(f))
	}
	response.Success(c, http.StatusOK, out, "feedback", nil)
}

// Delete DELETE /api/feedback/:id (admin)
func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteFeedback(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "feedback deleted", nil)
}

// CreateReview POST /api/rooms/:id/reviews
func (h *FeedbackHandler) CreateReview(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	r, err := h.Svc.Review(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toReview(r), "review created", nil)
}

// RoomReviews GET /api/rooms/:id/reviews
func (h *FeedbackHandler) RoomReviews(c *gin.Context) {
	list, avg, err := h.Svc.RoomReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]reviewDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toReview(r))
	}
	response.Success(c, http.StatusOK, out, "reviews", gin.H{"average_rating": avg, "count": len(out)})
}

// UpdateReview PUT /api/reviews/:id (author or admin)
func (h *FeedbackHandler) UpdateReview(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	r, err := h.Svc.UpdateReview(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toReview(r), "review updated", nil)
}

// DeleteReview DELETE /api/reviews/:id (author or admin)
func (h *FeedbackHandler) DeleteReview(c *gin.Context) {
	if err := h.Svc.DeleteReview(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "review deleted", nil)
}
