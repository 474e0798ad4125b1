package application

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

type Dashboard struct {
	BookingsByStatus      map[string]int `json:"bookings_by_status"`
	TotalRevenue          int64          `json:"total_revenue"`
	OccupiedRooms         int            `json:"occupied_rooms"`
	TotalRooms            int            `json:"total_rooms"`
	OccupancyRate         float64        `json:"occupancy_rate"`
	AverageFeedbackRating float64        `json:"average_feedback_rating"`
	AverageReviewRating   float64        `json:"average_review_rating"`
	Housekeeping          map[string]int `json:"housekeeping"`
}

type ReportService struct {
	Reports repo.ReportRepository

	MaxRangeDays int
	now          func() time.Time
}

func NewReportService(reports repo.ReportRepository) *ReportService {
	return &ReportService{Reports: reports, MaxRangeDays: 366, now: time.Now}
}

// Dashboard runs the aggregate queries concurrently; the first failure
// cancels the rest.
func (s *ReportService) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	today := entity.DateOnly(s.clock())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.BookingsByStatus, err = s.Reports.BookingsByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.TotalRevenue, err = s.Reports.NetRevenue(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.OccupiedRooms, d.TotalRooms, err = s.Reports.Occupancy(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		d.AverageFeedbackRating, err = s.Reports.AverageFeedbackRating(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.AverageReviewRating, err = s.Reports.AverageReviewRating(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Housekeeping, err = s.Reports.HousekeepingCounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if d.TotalRooms > 0 {
		d.OccupancyRate = float64(d.OccupiedRooms) / float64(d.TotalRooms)
	}
	return d, nil
}

func (s *ReportService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Revenue returns the daily paid revenue of [from, to]. Zero values default
// to the last 30 days.
func (s *ReportService) Revenue(ctx context.Context, from, to time.Time) ([]repo.RevenuePoint, error) {
	if to.IsZero() {
		to = s.clock()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -29)
	}
	from, to = entity.DateOnly(from), entity.DateOnly(to)
	if to.Before(from) {
		return nil, ErrInvalidDates
	}
	if s.MaxRangeDays > 0 && entity.NightsBetween(from, to)+1 > s.MaxRangeDays {
		return nil, ErrRangeTooLong
	}
	return s.Reports.DailyRevenue(ctx, from, to.AddDate(0, 0, 1))
}
