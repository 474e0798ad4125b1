package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *entity.Feedback) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO feedback (user_id, rating, comment)
		VALUES (NULLIF($1, '')::uuid, $2, $3)
		RETURNING id, created_at
	`, f.UserID, f.Rating, f.Comment)
	return mapErr(row.Scan(&f.ID, &f.CreatedAt))
}

func (r *FeedbackRepository) List(ctx context.Context, limit, offset int) ([]*entity.Feedback, error) {
	limit, offset = page(limit, offset)
	rows, err := r.pool.Query(ctx, `
		SELECT f.id, COALESCE(f.user_id::text, ''), COALESCE(u.name, ''), f.rating, f.comment, f.created_at
		FROM feedback f LEFT JOIN users u ON u.id = f.user_id
		ORDER BY f.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Feedback
	for rows.Next() {
		f := &entity.Feedback{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.AuthorName, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FeedbackRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

const reviewSelect = `SELECT v.id, v.room_id, v.user_id, COALESCE(u.name, ''), v.rating, v.comment, v.created_at, v.updated_at
	FROM reviews v LEFT JOIN users u ON u.id = v.user_id`

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func scanReview(row pgx.Row) (*entity.Review, error) {
	v := &entity.Review{}
	if err := row.Scan(&v.ID, &v.RoomID, &v.UserID, &v.AuthorName, &v.Rating, &v.Comment, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	return v, nil
}

func (r *ReviewRepository) Create(ctx context.Context, v *entity.Review) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (room_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, v.RoomID, v.UserID, v.Rating, v.Comment)
	return mapErr(row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt))
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, reviewSelect+` WHERE v.id = $1`, id))
}

func (r *ReviewRepository) ListByRoom(ctx context.Context, roomID string) ([]*entity.Review, error) {
	rows, err := r.pool.Query(ctx, reviewSelect+` WHERE v.room_id = $1 ORDER BY v.created_at DESC`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Review
	for rows.Next() {
		v, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *ReviewRepository) Update(ctx context.Context, v *entity.Review) error {
	v.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `UPDATE reviews SET rating = $1, comment = $2, updated_at = $3 WHERE id = $4`,
		v.Rating, v.Comment, v.UpdatedAt, v.ID)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

var (
	_ repository.FeedbackRepository = (*FeedbackRepository)(nil)
	_ repository.ReviewRepository   = (*ReviewRepository)(nil)
)
