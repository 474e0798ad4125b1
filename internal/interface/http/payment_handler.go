package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/response"
)

type PaymentHandler struct {
	Svc    *app.PaymentService
	Logger *logrus.Logger
}

func NewPaymentHandler(svc *app.PaymentService, logger *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{Svc: svc, Logger: logger}
}

type checkoutRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

type confirmPaymentRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// Checkout POST /api/payments/checkout
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	sess, err := h.Svc.Checkout(c.Request.Context(), middleware.ActorFrom(c), req.BookingID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, sess, "checkout session created", nil)
}

// Confirm POST /api/payments/confirm. Confirming the same session twice
// returns the original payment.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req confirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	p, err := h.Svc.Confirm(c.Request.Context(), middleware.ActorFrom(c), req.SessionID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toPayment(p), "payment confirmed", nil)
}

// List GET /api/payments
func (h *PaymentHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]paymentDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toPayment(p))
	}
	response.Success(c, http.StatusOK, out, "payments", nil)
}
