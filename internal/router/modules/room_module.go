package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/interface/middleware"
)

// RoomModule covers the room catalogue, its availability calendar, reviews
// and the housekeeping board.
type RoomModule struct {
	Rooms   *handlers.RoomHandler
	Reviews *handlers.FeedbackHandler
	Authz   middleware.Authorizer
}

func NewRoomModule(rooms *handlers.RoomHandler, reviews *handlers.FeedbackHandler, authz middleware.Authorizer) *RoomModule {
	return &RoomModule{Rooms: rooms, Reviews: reviews, Authz: authz}
}

func (m *RoomModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Catalogue reads are public
	public := rg.Group("/rooms")
	public.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	{
		public.GET("", m.Rooms.List)
		public.GET("/search", m.Rooms.Search)
		public.GET("/:id", m.Rooms.Get)
		public.GET("/:id/availability", middleware.OptionalAuth(m.Authz), m.Rooms.Availability)
		public.GET("/:id/reviews", m.Reviews.RoomReviews)
	}

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Authz))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/rooms/:id/reviews", m.Reviews.CreateReview)
		auth.PUT("/reviews/:id", m.Reviews.UpdateReview)
		auth.DELETE("/reviews/:id", m.Reviews.DeleteReview)
	}

	manage := auth.Group("/rooms")
	manage.Use(middleware.RequireRole(entity.RoleAdmin), middleware.RequirePermission(entity.PermManageRooms))
	{
		manage.POST("", m.Rooms.Create)
		manage.PUT("/:id", m.Rooms.Update)
		manage.DELETE("/:id", m.Rooms.Delete)
		manage.POST("/:id/image", m.Rooms.UploadImage)
	}

	hk := auth.Group("/housekeeping")
	hk.Use(middleware.RequireRole(entity.RoleAdmin), middleware.RequirePermission(entity.PermManageHousekeeping))
	{
		hk.GET("", m.Rooms.Housekeeping)
		hk.PATCH("/:roomID", m.Rooms.SetHousekeeping)
	}
}
