package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

const bookingSelect = `SELECT b.id, b.user_id, b.room_id, r.number, b.guest_name, b.guest_email, b.check_in, b.check_out,
	b.guests, b.amount, b.status, b.previous_status, b.payment_status, b.cancel_reason, b.created_at, b.updated_at
	FROM bookings b JOIN rooms r ON r.id = b.room_id`

// activeStatuses are the statuses that hold a room.
var activeStatuses = []string{
	string(entity.BookingPending),
	string(entity.BookingConfirmed),
	string(entity.BookingCheckedIn),
	string(entity.BookingCancelRequested),
}

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	b := &entity.Booking{}
	var status, prev, pay string
	if err := row.Scan(&b.ID, &b.UserID, &b.RoomID, &b.RoomNumber, &b.GuestName, &b.GuestEmail,
		&b.CheckIn, &b.CheckOut, &b.Guests, &b.Amount, &status, &prev, &pay, &b.CancelReason,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	b.Status = entity.BookingStatus(status)
	b.PreviousStatus = entity.BookingStatus(prev)
	b.PaymentStatus = entity.PaymentStatus(pay)
	return b, nil
}

// CreateIfAvailable locks the room row so concurrent bookings of the same
// room serialise on the overlap check.
func (r *BookingRepository) CreateIfAvailable(ctx context.Context, b *entity.Booking) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = tx.QueryRow(ctx, `SELECT number FROM rooms WHERE id = $1 FOR UPDATE`, b.RoomID).Scan(&b.RoomNumber); err != nil {
		return mapErr(err)
	}

	var overlapping bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE room_id = $1 AND status = ANY($2)
		  AND check_in < $3 AND check_out > $4
	)`, b.RoomID, activeStatuses, b.CheckOut, b.CheckIn).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping {
		err = repository.ErrConflict
		return err
	}

	if b.Status == "" {
		b.Status = entity.BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = entity.PaymentPending
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (user_id, room_id, guest_name, guest_email, check_in, check_out, guests, amount, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, b.UserID, b.RoomID, b.GuestName, b.GuestEmail, b.CheckIn, b.CheckOut, b.Guests, b.Amount,
		string(b.Status), string(b.PaymentStatus)).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		err = mapErr(err)
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, bookingSelect+` WHERE b.id = $1`, id))
}

func (r *BookingRepository) List(ctx context.Context, f repository.BookingFilter) ([]*entity.Booking, error) {
	limit, offset := page(f.Limit, f.Offset)
	rows, err := r.pool.Query(ctx, bookingSelect+`
		WHERE ($1 = '' OR b.user_id::text = $1)
		  AND ($2 = '' OR b.room_id::text = $2)
		  AND ($3 = '' OR b.status = $3)
		ORDER BY b.check_in DESC, b.created_at DESC
		LIMIT $4 OFFSET $5`, f.UserID, f.RoomID, string(f.Status), limit, offset)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *BookingRepository) ListActiveInRange(ctx context.Context, roomID string, from, to time.Time) ([]*entity.Booking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+`
		WHERE b.room_id = $1 AND b.status = ANY($2)
		  AND b.check_in < $3 AND b.check_out > $4
		ORDER BY b.check_in`, roomID, activeStatuses, to, from)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *BookingRepository) CountActiveForRoom(ctx context.Context, roomID string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE room_id = $1 AND status = ANY($2)`,
		roomID, activeStatuses).Scan(&n)
	return n, err
}

func (r *BookingRepository) UpdateState(ctx context.Context, b *entity.Booking, expect repository.BookingState) error {
	return updateState(ctx, r.pool, b, expect)
}

func (r *BookingRepository) MarkPaid(ctx context.Context, b *entity.Booking, expect repository.BookingState, p *entity.Payment) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = insertPayment(ctx, tx, p); err != nil {
		return err
	}
	if err = updateState(ctx, tx, b, expect); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit payment: %w", err)
	}
	return nil
}

// updateState is a compare-and-set on status and payment_status.
func updateState(ctx context.Context, q querier, b *entity.Booking, expect repository.BookingState) error {
	b.UpdatedAt = time.Now()
	res, err := q.Exec(ctx, `
		UPDATE bookings
		SET status = $1, previous_status = $2, payment_status = $3, cancel_reason = $4, updated_at = $5
		WHERE id = $6 AND status = $7 AND payment_status = $8
	`, string(b.Status), string(b.PreviousStatus), string(b.PaymentStatus), b.CancelReason, b.UpdatedAt, b.ID,
		string(expect.Status), string(expect.PaymentStatus))
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, b.ID).Scan(&exists); err != nil {
		return mapErr(err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	return affected(res)
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	defer rows.Close()
	var out []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
