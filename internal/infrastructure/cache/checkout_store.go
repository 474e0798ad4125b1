package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

func CheckoutKey(id string) string {
	return "payment:session:" + id
}

// CheckoutStore keeps checkout sessions as JSON values that expire with the session.
type CheckoutStore struct {
	rdb *redis.Client
}

func NewCheckoutStore(rdb *redis.Client) *CheckoutStore {
	return &CheckoutStore{rdb: rdb}
}

// Save writes s with the time left until s.ExpiresAt. A completed session
// is kept for its remaining lifetime so confirms stay idempotent.
func (c *CheckoutStore) Save(ctx context.Context, s *entity.CheckoutSession) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute
	}
	return helpers.RedisSetJSON(ctx, c.rdb, CheckoutKey(s.ID), s, ttl)
}

func (c *CheckoutStore) Get(ctx context.Context, id string) (*entity.CheckoutSession, error) {
	var s entity.CheckoutSession
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, CheckoutKey(id), &s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

var _ repository.CheckoutStore = (*CheckoutStore)(nil)
