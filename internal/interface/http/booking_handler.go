package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/response"
	"github.com/oksasatya/hotel-management/pkg/validation"
)

type BookingHandler struct {
	Svc    *app.BookingService
	Logger *logrus.Logger
}

func NewBookingHandler(svc *app.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

type createBookingRequest struct {
	RoomID     string `json:"room_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required,date"`
	CheckOut   string `json:"check_out" binding:"required,date"`
	Guests     int    `json:"guests" binding:"omitempty,min=1,max=20"`
	GuestName  string `json:"guest_name" binding:"omitempty,max=120"`
	GuestEmail string `json:"guest_email" binding:"omitempty,email"`
}

type listBookingsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed checked_in checked_out cancel_requested cancelled"`
	RoomID string `form:"room_id"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

type reasonRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// Create POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	in, _ := validation.ParseDate(req.CheckIn)
	out, _ := validation.ParseDate(req.CheckOut)
	b, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), app.CreateBookingInput{
		RoomID:     req.RoomID,
		CheckIn:    in,
		CheckOut:   out,
		Guests:     req.Guests,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toBooking(b), "booking created", nil)
}

// List GET /api/bookings. Guests see their own bookings; admins see all.
func (h *BookingHandler) List(c *gin.Context) {
	var q listBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	list, err := h.Svc.List(c.Request.Context(), middleware.ActorFrom(c), repo.BookingFilter{
		Status: entity.BookingStatus(q.Status),
		RoomID: q.RoomID,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBookings(list), "bookings", nil)
}

// Get GET /api/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBooking(b), "booking", nil)
}

type bookingStep func(ctx context.Context, actor app.Actor, id string) (*entity.Booking, error)

func (h *BookingHandler) step(fn bookingStep, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := fn(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
		if err != nil {
			fail(c, h.Logger, err)
			return
		}
		response.Success(c, http.StatusOK, toBooking(b), message, nil)
	}
}

// Confirm POST /api/bookings/:id/confirm
func (h *BookingHandler) Confirm() gin.HandlerFunc { return h.step(h.Svc.Confirm, "booking confirmed") }

// CheckIn POST /api/bookings/:id/check-in
func (h *BookingHandler) CheckIn() gin.HandlerFunc { return h.step(h.Svc.CheckIn, "guest checked in") }

// CheckOut POST /api/bookings/:id/check-out
func (h *BookingHandler) CheckOut() gin.HandlerFunc { return h.step(h.Svc.CheckOut, "guest checked out") }

// ApproveCancel POST /api/bookings/:id/cancel/approve
func (h *BookingHandler) ApproveCancel() gin.HandlerFunc {
	return h.step(h.Svc.ApproveCancel, "cancellation approved")
}

// DeclineCancel POST /api/bookings/:id/cancel/decline
func (h *BookingHandler) DeclineCancel() gin.HandlerFunc {
	return h.step(h.Svc.DeclineCancel, "cancellation declined")
}

// RequestCancel POST /api/bookings/:id/cancel-request (owner)
func (h *BookingHandler) RequestCancel(c *gin.Context) {
	var req reasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	b, err := h.Svc.RequestCancel(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBooking(b), "cancellation requested", nil)
}

// Cancel POST /api/bookings/:id/cancel (admin; pending bookings only)
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req reasonRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		badPayload(c, err)
		return
	}
	b, err := h.Svc.Cancel(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toBooking(b), "booking cancelled", nil)
}

// Delete DELETE /api/bookings/:id (admin)
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "booking deleted", nil)
}
