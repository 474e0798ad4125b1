package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

const roomColumns = `id, number, type, price, capacity, amenities, description, image_url, available, housekeeping_status, created_at, updated_at`

type RoomRepository struct {
	pool *pgxpool.Pool
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{pool: pool}
}

func scanRoom(row pgx.Row) (*entity.Room, error) {
	rm := &entity.Room{}
	var typ, hk string
	if err := row.Scan(&rm.ID, &rm.Number, &typ, &rm.Price, &rm.Capacity, &rm.Amenities,
		&rm.Description, &rm.ImageURL, &rm.Available, &hk, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	rm.Type = entity.RoomType(typ)
	rm.HousekeepingStatus = entity.HousekeepingStatus(hk)
	if rm.Amenities == nil {
		rm.Amenities = []string{}
	}
	return rm, nil
}

func (r *RoomRepository) Create(ctx context.Context, rm *entity.Room) error {
	if rm.HousekeepingStatus == "" {
		rm.HousekeepingStatus = entity.HKClean
	}
	if rm.Amenities == nil {
		rm.Amenities = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO rooms (number, type, price, capacity, amenities, description, image_url, available, housekeeping_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, rm.Number, string(rm.Type), rm.Price, rm.Capacity, rm.Amenities, rm.Description, rm.ImageURL,
		rm.Available, string(rm.HousekeepingStatus))
	return mapErr(row.Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt))
}

func (r *RoomRepository) GetByID(ctx context.Context, id string) (*entity.Room, error) {
	return scanRoom(r.pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id))
}

func (r *RoomRepository) List(ctx context.Context, f repository.RoomFilter) ([]*entity.Room, error) {
	var available any
	if f.Available != nil {
		available = *f.Available
	}
	rows, err := r.pool.Query(ctx, `SELECT `+roomColumns+` FROM rooms
		WHERE ($1 = '' OR type = $1)
		  AND capacity >= $2
		  AND ($3::boolean IS NULL OR available = $3::boolean)
		  AND ($4 = '' OR number ILIKE '%' || $4 || '%' OR description ILIKE '%' || $4 || '%')
		ORDER BY number`, string(f.Type), f.MinCapacity, available, f.Query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *RoomRepository) Update(ctx context.Context, rm *entity.Room) error {
	rm.UpdatedAt = time.Now()
	if rm.Amenities == nil {
		rm.Amenities = []string{}
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE rooms
		SET number = $1, type = $2, price = $3, capacity = $4, amenities = $5,
		    description = $6, available = $7, updated_at = $8
		WHERE id = $9
	`, rm.Number, string(rm.Type), rm.Price, rm.Capacity, rm.Amenities, rm.Description, rm.Available, rm.UpdatedAt, rm.ID)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (r *RoomRepository) UpdateHousekeeping(ctx context.Context, id string, status entity.HousekeepingStatus) error {
	return updateHousekeeping(ctx, r.pool, id, status)
}

func updateHousekeeping(ctx context.Context, q querier, id string, status entity.HousekeepingStatus) error {
	res, err := q.Exec(ctx, `UPDATE rooms SET housekeeping_status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (r *RoomRepository) SetImage(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `UPDATE rooms SET image_url = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

var _ repository.RoomRepository = (*RoomRepository)(nil)
