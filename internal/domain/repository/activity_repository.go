package repository

import (
	"context"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

type ActivityRepository interface {
	Insert(ctx context.Context, a *entity.ActivityLog) error
	Query(ctx context.Context, f entity.ActivityFilter) ([]entity.ActivityLog, error)
}
