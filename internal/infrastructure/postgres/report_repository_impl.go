package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

// ReportRepository holds the dashboard aggregates.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type keyCount struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

func (r *ReportRepository) groupCount(ctx context.Context, query string) (map[string]int, error) {
	var rows []keyCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, kc := range rows {
		out[kc.Key] = kc.Count
	}
	return out, nil
}

func (r *ReportRepository) BookingsByStatus(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT status AS key, COUNT(*) AS count FROM bookings GROUP BY status`)
}

func (r *ReportRepository) HousekeepingCounts(ctx context.Context) (map[string]int, error) {
	return r.groupCount(ctx, `SELECT housekeeping_status AS key, COUNT(*) AS count FROM rooms GROUP BY housekeeping_status`)
}

// NetRevenue is paid minus refunded, in minor units.
func (r *ReportRepository) NetRevenue(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(CASE status
		WHEN 'paid' THEN amount
		WHEN 'refunded' THEN -amount
		ELSE 0 END), 0)::bigint FROM payments`)
	return total, err
}

func (r *ReportRepository) Occupancy(ctx context.Context, day time.Time) (int, int, error) {
	var occupied, total int
	if err := r.db.GetContext(ctx, &occupied, `SELECT COUNT(DISTINCT room_id) FROM bookings
		WHERE status = 'checked_in' AND check_in <= $1 AND check_out > $1`, day); err != nil {
		return 0, 0, err
	}
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM rooms`); err != nil {
		return 0, 0, err
	}
	return occupied, total, nil
}

func (r *ReportRepository) AverageFeedbackRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.GetContext(ctx, &avg, `SELECT COALESCE(AVG(rating), 0)::float8 FROM feedback`)
	return avg, err
}

func (r *ReportRepository) AverageReviewRating(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.GetContext(ctx, &avg, `SELECT COALESCE(AVG(rating), 0)::float8 FROM reviews`)
	return avg, err
}

func (r *ReportRepository) DailyRevenue(ctx context.Context, from, to time.Time) ([]repository.RevenuePoint, error) {
	points := []repository.RevenuePoint{}
	err := r.db.SelectContext(ctx, &points, `SELECT date_trunc('day', created_at) AS day, SUM(amount)::bigint AS amount
		FROM payments
		WHERE status = 'paid' AND created_at >= $1 AND created_at < $2
		GROUP BY 1 ORDER BY 1`, from, to)
	return points, err
}

var _ repository.ReportRepository = (*ReportRepository)(nil)
