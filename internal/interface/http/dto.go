package handlers

import (
	"time"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

// The entity types carry no JSON tags; handlers answer with these views so
// password hashes and internal fields never leave the service.

type userDTO struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	AvatarURL   string      `json:"avatar_url"`
	Role        entity.Role `json:"role"`
	Permissions []string    `json:"permissions"`
	IsVerified  bool        `json:"is_verified"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func toUser(u *entity.User) userDTO {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return userDTO{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
		Permissions: perms,
		IsVerified:  u.IsVerified,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type roomDTO struct {
	ID                 string                    `json:"id"`
	Number             string                    `json:"number"`
	Type               entity.RoomType           `json:"type"`
	Price              int64                     `json:"price"`
	Capacity           int                       `json:"capacity"`
	Amenities          []string                  `json:"amenities"`
	Description        string                    `json:"description"`
	ImageURL           string                    `json:"image_url,omitempty"`
	Available          bool                      `json:"available"`
	HousekeepingStatus entity.HousekeepingStatus `json:"housekeeping_status"`
	CreatedAt          time.Time                 `json:"created_at"`
	UpdatedAt          time.Time                 `json:"updated_at"`
}

func toRoom(r *entity.Room) roomDTO {
	amenities := r.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return roomDTO{
		ID:                 r.ID,
		Number:             r.Number,
		Type:               r.Type,
		Price:              r.Price,
		Capacity:           r.Capacity,
		Amenities:          amenities,
		Description:        r.Description,
		ImageURL:           r.ImageURL,
		Available:          r.Available,
		HousekeepingStatus: r.HousekeepingStatus,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func toRooms(rs []*entity.Room) []roomDTO {
	out := make([]roomDTO, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRoom(r))
	}
	return out
}

type bookingDTO struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	RoomID         string               `json:"room_id"`
	RoomNumber     string               `json:"room_number,omitempty"`
	GuestName      string               `json:"guest_name"`
	GuestEmail     string               `json:"guest_email"`
	CheckIn        string               `json:"check_in"`
	CheckOut       string               `json:"check_out"`
	Nights         int                  `json:"nights"`
	Guests         int                  `json:"guests"`
	Amount         int64                `json:"amount"`
	Status         entity.BookingStatus `json:"status"`
	PreviousStatus entity.BookingStatus `json:"previous_status,omitempty"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	CancelReason   string               `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func toBooking(b *entity.Booking) bookingDTO {
	return bookingDTO{
		ID:             b.ID,
		UserID:         b.UserID,
		RoomID:         b.RoomID,
		RoomNumber:     b.RoomNumber,
		GuestName:      b.GuestName,
		GuestEmail:     b.GuestEmail,
		CheckIn:        b.CheckIn.Format(entity.DateLayout),
		CheckOut:       b.CheckOut.Format(entity.DateLayout),
		Nights:         b.Nights(),
		Guests:         b.Guests,
		Amount:         b.Amount,
		Status:         b.Status,
		PreviousStatus: b.PreviousStatus,
		PaymentStatus:  b.PaymentStatus,
		CancelReason:   b.CancelReason,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toBookings(bs []*entity.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBooking(b))
	}
	return out
}

type paymentDTO struct {
	ID        string               `json:"id"`
	BookingID string               `json:"booking_id"`
	UserID    string               `json:"user_id"`
	SessionID string               `json:"session_id"`
	Amount    int64                `json:"amount"`
	Currency  string               `json:"currency"`
	Status    entity.PaymentStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}

func toPayment(p *entity.Payment) paymentDTO {
	return paymentDTO{
		ID:        p.ID,
		BookingID: p.BookingID,
		UserID:    p.UserID,
		SessionID: p.SessionID,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

type feedbackDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func toFeedback(f *entity.Feedback) feedbackDTO {
	return feedbackDTO{
		ID:         f.ID,
		UserID:     f.UserID,
		AuthorName: f.AuthorName,
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  f.CreatedAt,
	}
}

type reviewDTO struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toReview(r *entity.Review) reviewDTO {
	return reviewDTO{
		ID:         r.ID,
		RoomID:     r.RoomID,
		UserID:     r.UserID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
