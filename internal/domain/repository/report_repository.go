package repository

import (
	"context"
	"time"
)

type RevenuePoint struct {
	Day    time.Time `db:"day" json:"day"`
	Amount int64     `db:"amount" json:"amount"`
}

// ReportRepository runs the read-only aggregate queries behind the dashboard.
type ReportRepository interface {
	BookingsByStatus(ctx context.Context) (map[string]int, error)
	NetRevenue(ctx context.Context) (int64, error)
	Occupancy(ctx context.Context, day time.Time) (occupied, total int, err error)
	AverageFeedbackRating(ctx context.Context) (float64, error)
	AverageReviewRating(ctx context.Context) (float64, error)
	HousekeepingCounts(ctx context.Context) (map[string]int, error)
	DailyRevenue(ctx context.Context, from, to time.Time) ([]RevenuePoint, error)
}
