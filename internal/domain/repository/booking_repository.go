package repository

import (
	"context"
	"time"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

type BookingFilter struct {
	UserID string
	RoomID string
	Status entity.BookingStatus
	Limit  int
	Offset int
}

// BookingState is what a state change compares against before writing.
type BookingState struct {
	Status        entity.BookingStatus
	PaymentStatus entity.PaymentStatus
}

func StateOf(b *entity.Booking) BookingState {
	return BookingState{Status: b.Status, PaymentStatus: b.PaymentStatus}
}

type BookingRepository interface {
	// CreateIfAvailable inserts b unless an active booking of the same room
	// overlaps its dates, in which case ErrConflict is returned.
	CreateIfAvailable(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	List(ctx context.Context, f BookingFilter) ([]*entity.Booking, error)
	// ListActiveInRange returns active bookings of a room that share a night with [from, to).
	ListActiveInRange(ctx context.Context, roomID string, from, to time.Time) ([]*entity.Booking, error)
	CountActiveForRoom(ctx context.Context, roomID string) (int, error)
	// UpdateState writes the state fields of b when the stored row still
	// matches expect. ErrConflict when another writer changed it first.
	UpdateState(ctx context.Context, b *entity.Booking, expect BookingState) error
	// MarkPaid inserts p and writes the state of b in one transaction, with
	// the same compare as UpdateState. ErrDuplicate when the session already
	// has a paid row.
	MarkPaid(ctx context.Context, b *entity.Booking, expect BookingState, p *entity.Payment) error
	Delete(ctx context.Context, id string) error
}
