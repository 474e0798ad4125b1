package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

type FeedbackService struct {
	Feedback repo.FeedbackRepository
	Reviews  repo.ReviewRepository
	Rooms    repo.RoomRepository
	Activity *ActivityService
	Logger   *logrus.Logger
}

func NewFeedbackService(feedback repo.FeedbackRepository, reviews repo.ReviewRepository, rooms repo.RoomRepository, logger *logrus.Logger) *FeedbackService {
	return &FeedbackService{Feedback: feedback, Reviews: reviews, Rooms: rooms, Logger: logger}
}

func (s *FeedbackService) Submit(ctx context.Context, actor Actor, rating int, comment string) (*entity.Feedback, error) {
	if !entity.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	f := &entity.Feedback{UserID: actor.UserID, Rating: rating, Comment: strings.TrimSpace(comment)}
	if err := s.Feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, "feedback.create", "feedback", f.ID, map[string]any{"rating": rating})
	return f, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context, limit, offset int) ([]*entity.Feedback, error) {
	return s.Feedback.List(ctx, limit, offset)
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, actor Actor, id string) error {
	if err := s.Feedback.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	s.Activity.Record(ctx, actor, "feedback.delete", "feedback", id, nil)
	return nil
}

// Review writes the caller's single review of a room.
func (s *FeedbackService) Review(ctx context.Context, actor Actor, roomID string, rating int, comment string) (*entity.Review, error) {
	if !entity.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	if _, err := s.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	r := &entity.Review{RoomID: roomID, UserID: actor.UserID, Rating: rating, Comment: strings.TrimSpace(comment)}
	if err := s.Reviews.Create(ctx, r); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	s.Activity.Record(ctx, actor, "review.create", "review", r.ID, map[string]any{"room_id": roomID, "rating": rating})
	return r, nil
}

// RoomReviews lists reviews of a room with their average rating, 0 when
// there are none.
func (s *FeedbackService) RoomReviews(ctx context.Context, roomID string) ([]*entity.Review, float64, error) {
	list, err := s.Reviews.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, 0, err
	}
	if len(list) == 0 {
		return list, 0, nil
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return list, float64(sum) / float64(len(list)), nil
}

func (s *FeedbackService) ownReview(ctx context.Context, actor Actor, id string) (*entity.Review, error) {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if !actor.Can(r.UserID) {
		return nil, ErrForbidden
	}
	return r, nil
}

func (s *FeedbackService) UpdateReview(ctx context.Context, actor Actor, id string, rating int, comment string) (*entity.Review, error) {
	if !entity.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	r, err := s.ownReview(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	r.Rating = rating
	r.Comment = strings.TrimSpace(comment)
	if err := s.Reviews.Update(ctx, r); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	s.Activity.Record(ctx, actor, "review.update", "review", r.ID, map[string]any{"rating": rating})
	return r, nil
}

func (s *FeedbackService) DeleteReview(ctx context.Context, actor Actor, id string) error {
	r, err := s.ownReview(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.Reviews.Delete(ctx, r.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	s.Activity.Record(ctx, actor, "review.delete", "review", r.ID, nil)
	return nil
}
