package repository

import (
	"context"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f *entity.Feedback) error
	List(ctx context.Context, limit, offset int) ([]*entity.Feedback, error)
	Delete(ctx context.Context, id string) error
}

type ReviewRepository interface {
	// Create returns ErrDuplicate when the user already reviewed the room.
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByRoom(ctx context.Context, roomID string) ([]*entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
}
