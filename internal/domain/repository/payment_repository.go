package repository

import (
	"context"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetBySession(ctx context.Context, sessionID string) (*entity.Payment, error)
	List(ctx context.Context, userID string) ([]*entity.Payment, error)
}

// CheckoutStore keeps open checkout sessions until they expire.
type CheckoutStore interface {
	Save(ctx context.Context, s *entity.CheckoutSession) error
	Get(ctx context.Context, id string) (*entity.CheckoutSession, error)
}
