package provider

import (
	"context"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

// NotificationBus fans notifications out to live stream subscribers across
// API replicas.
type NotificationBus interface {
	Publish(ctx context.Context, n *entity.Notification) error
	// Subscribe delivers notifications of userID until ctx is done; the
	// returned channel is closed afterwards.
	Subscribe(ctx context.Context, userID string) (<-chan *entity.Notification, error)
	Close() error
}

const NotificationChannelPrefix = "notifications:user:"

func UserChannel(userID string) string {
	return NotificationChannelPrefix + userID
}
