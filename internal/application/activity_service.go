package application

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

// ActivityService records the audit trail. Recording never fails the
// operation being audited.
type ActivityService struct {
	Repo   repository.ActivityRepository
	Logger *logrus.Logger
}

func NewActivityService(repo repository.ActivityRepository, logger *logrus.Logger) *ActivityService {
	return &ActivityService{Repo: repo, Logger: logger}
}

func (s *ActivityService) Record(ctx context.Context, actor Actor, action, entityName, entityID string, meta map[string]any) {
	if s == nil || s.Repo == nil {
		return
	}
	a := &entity.ActivityLog{
		Action:    action,
		Entity:    entityName,
		EntityID:  entityID,
		IP:        actor.IP,
		UserAgent: actor.UserAgent,
	}
	if actor.UserID != "" {
		uid := actor.UserID
		a.UserID = &uid
	}
	if len(meta) > 0 {
		if b, err := json.Marshal(meta); err == nil {
			a.Metadata = b
		}
	}
	// detached from request cancellation so a client hang-up doesn't drop the record
	if err := s.Repo.Insert(context.WithoutCancel(ctx), a); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"action": action, "entity": entityName, "entity_id": entityID}).
			Warn("activity log insert failed")
	}
}

func (s *ActivityService) Query(ctx context.Context, f entity.ActivityFilter) ([]entity.ActivityLog, error) {
	return s.Repo.Query(ctx, f)
}
