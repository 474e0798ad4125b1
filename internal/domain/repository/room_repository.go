package repository

import (
	"context"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

type RoomFilter struct {
	Type        entity.RoomType
	MinCapacity int
	Available   *bool
	Query       string
}

type RoomRepository interface {
	Create(ctx context.Context, r *entity.Room) error
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	List(ctx context.Context, f RoomFilter) ([]*entity.Room, error)
	Update(ctx context.Context, r *entity.Room) error
	Delete(ctx context.Context, id string) error
	UpdateHousekeeping(ctx context.Context, id string, status entity.HousekeepingStatus) error
	SetImage(ctx context.Context, id, url string) error
}
