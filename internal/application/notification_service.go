package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

const notificationHistoryLimit = 100

// NotificationService persists notifications and fans them out on the
// event bus to connected streams.
type NotificationService struct {
	Repo   repo.NotificationRepository
	Users  repo.UserRepository
	Bus    provider.NotificationBus
	Logger *logrus.Logger
}

func NewNotificationService(r repo.NotificationRepository, users repo.UserRepository, bus provider.NotificationBus, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: r, Users: users, Bus: bus, Logger: logger}
}

// Create stores a notification for userID and publishes it.
func (s *NotificationService) Create(ctx context.Context, userID, message string, typ entity.NotificationType, link string) (*entity.Notification, error) {
	if typ == "" {
		typ = entity.NotifyInfo
	}
	n := &entity.Notification{
		UserID:  userID,
		Message: strings.TrimSpace(message),
		Type:    typ,
		Link:    link,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}
	if s.Bus != nil {
		if err := s.Bus.Publish(ctx, n); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Warn("publish notification failed")
		}
	}
	return n, nil
}

// Notify is Create for side effects of other operations: failures are
// logged, never returned.
func (s *NotificationService) Notify(ctx context.Context, userID, message string, typ entity.NotificationType, link string) {
	if s == nil || userID == "" {
		return
	}
	if _, err := s.Create(context.WithoutCancel(ctx), userID, message, typ, link); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("create notification failed")
	}
}

// NotifyAdmins sends the same notification to every admin and superadmin.
func (s *NotificationService) NotifyAdmins(ctx context.Context, message string, typ entity.NotificationType, link string) {
	if s == nil || s.Users == nil {
		return
	}
	admins, err := s.Users.ListByRoles(ctx, entity.RoleAdmin, entity.RoleSuperAdmin)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("list admins failed")
		}
		return
	}
	for _, a := range admins {
		s.Notify(ctx, a.ID, message, typ, link)
	}
}

func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool) ([]*entity.Notification, error) {
	return s.Repo.ListByUser(ctx, userID, unreadOnly, notificationHistoryLimit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.Repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.Repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// Subscribe streams new notifications of userID until ctx ends.
func (s *NotificationService) Subscribe(ctx context.Context, userID string) (<-chan *entity.Notification, error) {
	return s.Bus.Subscribe(ctx, userID)
}
