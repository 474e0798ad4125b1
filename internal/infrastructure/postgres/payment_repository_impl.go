package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

const paymentColumns = `id, booking_id, user_id, session_id, amount, currency, status, created_at`

type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	p := &entity.Payment{}
	var status string
	if err := row.Scan(&p.ID, &p.BookingID, &p.UserID, &p.SessionID, &p.Amount, &p.Currency, &status, &p.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	p.Status = entity.PaymentStatus(status)
	return p, nil
}

// Create returns ErrDuplicate when a paid row already exists for the session.
func (r *PaymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	return insertPayment(ctx, r.pool, p)
}

func insertPayment(ctx context.Context, q querier, p *entity.Payment) error {
	row := q.QueryRow(ctx, `
		INSERT INTO payments (booking_id, user_id, session_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, p.BookingID, p.UserID, p.SessionID, p.Amount, p.Currency, string(p.Status))
	return mapErr(row.Scan(&p.ID, &p.CreatedAt))
}

func (r *PaymentRepository) GetBySession(ctx context.Context, sessionID string) (*entity.Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE session_id = $1 AND status = 'paid'`, sessionID))
}

// List returns payments of userID, or every payment when userID is empty.
func (r *PaymentRepository) List(ctx context.Context, userID string) ([]*entity.Payment, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+paymentColumns+` FROM payments
		WHERE ($1 = '' OR user_id::text = $1)
		ORDER BY created_at DESC LIMIT 500`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)
