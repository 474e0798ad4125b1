package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
)

const subscriberBuffer = 32

// RedisEventBus delivers notifications through Redis Pub/Sub. One Redis
// subscription is held per user channel and shared by every local stream
// of that user.
type RedisEventBus struct {
	rdb           *redis.Client
	log           *logrus.Logger
	subscriptions map[string]*redis.PubSub
	subscribers   map[string]map[chan *entity.Notification]struct{}
	mu            sync.RWMutex
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewRedisEventBus(rdb *redis.Client, log *logrus.Logger) *RedisEventBus {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisEventBus{
		rdb:           rdb,
		log:           log,
		subscriptions: make(map[string]*redis.PubSub),
		subscribers:   make(map[string]map[chan *entity.Notification]struct{}),
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (b *RedisEventBus) Publish(ctx context.Context, n *entity.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := b.rdb.Publish(ctx, provider.UserChannel(n.UserID), data).Err(); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

func (b *RedisEventBus) Subscribe(ctx context.Context, userID string) (<-chan *entity.Notification, error) {
	channel := provider.UserChannel(userID)

	b.mu.RLock()
	_, exists := b.subscriptions[channel]
	b.mu.RUnlock()

	var fresh *redis.PubSub
	if !exists {
		fresh = b.rdb.Subscribe(b.ctx, channel)
		// Wait for the subscription confirmation so a publish racing the
		// stream's "connected" event is not lost.
		if _, err := fresh.Receive(ctx); err != nil {
			_ = fresh.Close()
			return nil, fmt.Errorf("subscribe %s: %w", channel, err)
		}
	}

	b.mu.Lock()
	if b.ctx.Err() != nil {
		b.mu.Unlock()
		if fresh != nil {
			_ = fresh.Close()
		}
		return nil, fmt.Errorf("subscribe %s: %w", channel, b.ctx.Err())
	}
	if _, ok := b.subscriptions[channel]; !ok && fresh != nil {
		b.subscriptions[channel] = fresh
		go b.receive(channel, fresh)
		fresh = nil
	} else if !ok {
		// the shared subscription went away while unlocked
		b.mu.Unlock()
		return b.Subscribe(ctx, userID)
	}
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entity.Notification]struct{})
	}
	ch := make(chan *entity.Notification, subscriberBuffer)
	b.subscribers[channel][ch] = struct{}{}
	b.mu.Unlock()

	if fresh != nil {
		// lost the race to another stream of the same user
		_ = fresh.Close()
	}

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, ch)
	}()
	return ch, nil
}

func (b *RedisEventBus) receive(channel string, pubsub *redis.PubSub) {
	msgs := pubsub.Channel()
	for {
		select {
		case <-b.ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var n entity.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				b.log.WithError(err).WithField("channel", channel).Warn("drop malformed notification")
				continue
			}
			b.mu.RLock()
			for sub := range b.subscribers[channel] {
				select {
				case sub <- &n:
				default:
					b.log.WithFields(logrus.Fields{"channel": channel, "id": n.ID}).Warn("subscriber full, notification skipped")
				}
			}
			b.mu.RUnlock()
		}
	}
}

func (b *RedisEventBus) removeSubscriber(channel string, ch chan *entity.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.subscribers[channel]
	if !ok {
		return
	}
	if _, ok := subs[ch]; !ok {
		return
	}
	delete(subs, ch)
	close(ch)

	if len(subs) == 0 {
		delete(b.subscribers, channel)
		if pubsub, ok := b.subscriptions[channel]; ok {
			_ = pubsub.Close()
			delete(b.subscriptions, channel)
		}
	}
}

// Close stops every subscription and closes all subscriber channels.
func (b *RedisEventBus) Close() error {
	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	var firstErr error
	for channel, pubsub := range b.subscriptions {
		if err := pubsub.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close subscription %s: %w", channel, err)
		}
		delete(b.subscriptions, channel)
	}
	for channel, subs := range b.subscribers {
		for ch := range subs {
			close(ch)
		}
		delete(b.subscribers, channel)
	}
	return firstErr
}

var _ provider.NotificationBus = (*RedisEventBus)(nil)
