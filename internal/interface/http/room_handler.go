package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
	"github.com/oksasatya/hotel-management/pkg/response"
	"github.com/oksasatya/hotel-management/pkg/validation"
)

type RoomHandler struct {
	Svc    *app.RoomService
	Logger *logrus.Logger
}

func NewRoomHandler(svc *app.RoomService, logger *logrus.Logger) *RoomHandler {
	return &RoomHandler{Svc: svc, Logger: logger}
}

type roomRequest struct {
	Number      *string  `json:"number" binding:"omitempty,min=1,max=16"`
	Type        *string  `json:"type" binding:"omitempty,roomtype"`
	Price       *int64   `json:"price" binding:"omitempty,min=0"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1,max=20"`
	Amenities   []string `json:"amenities" binding:"omitempty,max=50,dive,min=1,max=64"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	Available   *bool    `json:"available"`
}

func (r roomRequest) input() app.RoomInput {
	in := app.RoomInput{
		Number:      r.Number,
		Price:       r.Price,
		Capacity:    r.Capacity,
		Amenities:   r.Amenities,
		Description: r.Description,
		Available:   r.Available,
	}
	if r.Type != nil {
		t := entity.RoomType(*r.Type)
		in.Type = &t
	}
	return in
}

type listRoomsQuery struct {
	Type        string `form:"type" binding:"omitempty,roomtype"`
	MinCapacity int    `form:"min_capacity" binding:"omitempty,min=1"`
	Available   string `form:"available" binding:"omitempty,oneof=true false"`
}

type rangeQuery struct {
	From string `form:"from" binding:"required,date"`
	To   string `form:"to" binding:"required,date"`
}

type housekeepingRequest struct {
	Status string `json:"status" binding:"required,housekeeping"`
}

type housekeepingDTO struct {
	RoomID    string                    `json:"room_id"`
	Number    string                    `json:"number"`
	Type      entity.RoomType           `json:"type"`
	Status    entity.HousekeepingStatus `json:"status"`
	Available bool                      `json:"available"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// List GET /api/rooms
func (h *RoomHandler) List(c *gin.Context) {
	var q listRoomsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	f := repo.RoomFilter{Type: entity.RoomType(q.Type), MinCapacity: q.MinCapacity}
	if q.Available != "" {
		avail, _ := strconv.ParseBool(q.Available)
		f.Available = &avail
	}
	rooms, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toRooms(rooms), "rooms", nil)
}

// Search GET /api/rooms/search?q=
func (h *RoomHandler) Search(c *gin.Context) {
	rooms, err := h.Svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toRooms(rooms), "rooms", nil)
}

// Get GET /api/rooms/:id
func (h *RoomHandler) Get(c *gin.Context) {
	r, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toRoom(r), "room", nil)
}

// Create POST /api/rooms
func (h *RoomHandler) Create(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), middleware.ActorFrom(c), req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toRoom(r), "room created", nil)
}

// Update PUT /api/rooms/:id
func (h *RoomHandler) Update(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toRoom(r), "room updated", nil)
}

// Delete DELETE /api/rooms/:id
func (h *RoomHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "room deleted", nil)
}

// UploadImage POST /api/rooms/:id/image (multipart field "file")
func (h *RoomHandler) UploadImage(c *gin.Context) {
	name, ctype, data, ok := readUpload(c)
	if !ok {
		return
	}
	r, err := h.Svc.UploadImage(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), name, ctype, data)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toRoom(r), "image uploaded", nil)
}

// Availability GET /api/rooms/:id/availability?from=&to=
func (h *RoomHandler) Availability(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	from, _ := validation.ParseDate(q.From)
	to, _ := validation.ParseDate(q.To)
	days, err := h.Svc.Availability(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), from, to)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, days, "availability", gin.H{"from": q.From, "to": q.To})
}

func toHousekeeping(r *entity.Room) housekeepingDTO {
	return housekeepingDTO{
		RoomID:    r.ID,
		Number:    r.Number,
		Type:      r.Type,
		Status:    r.HousekeepingStatus,
		Available: r.Available,
		UpdatedAt: r.UpdatedAt,
	}
}

// Housekeeping GET /api/housekeeping
func (h *RoomHandler) Housekeeping(c *gin.Context) {
	rooms, err := h.Svc.Housekeeping(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	out := make([]housekeepingDTO, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toHousekeeping(r))
	}
	response.Success(c, http.StatusOK, out, "housekeeping", nil)
}

// SetHousekeeping PATCH /api/housekeeping/:roomID
func (h *RoomHandler) SetHousekeeping(c *gin.Context) {
	var req housekeepingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	r, err := h.Svc.SetHousekeeping(c.Request.Context(), middleware.ActorFrom(c), c.Param("roomID"), entity.HousekeepingStatus(req.Status))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toHousekeeping(r), "housekeeping updated", nil)
}
