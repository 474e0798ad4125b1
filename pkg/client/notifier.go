package client

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultToastDuration = 5 * time.Second

// ErrNotAuthenticated is returned by Run when the session probe fails.
var ErrNotAuthenticated = errors.New("not authenticated")

// Toast is a transient local notification.
type Toast struct {
	ID        string        `json:"id"`
	Message   string        `json:"message"`
	Type      string        `json:"type"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// State is a snapshot handed to OnChange subscribers.
type State struct {
	Toasts        []Toast
	Notifications []Notification
	Unread        int
}

// Notifier keeps the visible toasts and the notification history. History
// comes from periodic polling and the push stream; both upsert by id.
type Notifier struct {
	client       *Client
	log          *logrus.Logger
	pollInterval time.Duration
	newBackoff   func() backoff.BackOff

	mu            sync.Mutex
	authenticated bool
	toasts        []Toast
	history       map[string]Notification
	listeners     []func(State)
}

type NotifierOption func(*Notifier)

func WithPollInterval(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		if d > 0 {
			n.pollInterval = d
		}
	}
}

// WithStreamBackoff overrides the reconnect policy of the push stream.
func WithStreamBackoff(fn func() backoff.BackOff) NotifierOption {
	return func(n *Notifier) { n.newBackoff = fn }
}

func NewNotifier(c *Client, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		client:       c,
		log:          c.log,
		pollInterval: DefaultPollInterval,
		newBackoff:   newStreamBackoff,
		history:      map[string]Notification{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// newStreamBackoff waits 1s, 2s, 4s ... up to 30s between reconnects and
// never gives up.
func newStreamBackoff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.Multiplier = 2
	b.MaxInterval = 30 * time.Second
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// OnChange registers fn to receive a snapshot after every state change.
func (n *Notifier) OnChange(fn func(State)) {
	n.mu.Lock()
	n.listeners = append(n.listeners, fn)
	n.mu.Unlock()
}

// SetAuthenticated records the outcome of the latest session probe.
func (n *Notifier) SetAuthenticated(ok bool) {
	n.mu.Lock()
	n.authenticated = ok
	n.mu.Unlock()
}

func (n *Notifier) Authenticated() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.authenticated
}

// Toast shows msg for d (DefaultToastDuration when d <= 0) and returns its
// id. When signed in the toast is also persisted; that call is fire and
// forget.
func (n *Notifier) Toast(msg, typ string, d time.Duration) string {
	if !validType(typ) {
		typ = TypeInfo
	}
	if d <= 0 {
		d = DefaultToastDuration
	}
	t := Toast{ID: uuid.NewString(), Message: msg, Type: typ, Duration: d, CreatedAt: time.Now()}

	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	persist := n.authenticated
	n.mu.Unlock()
	n.emit()

	time.AfterFunc(d, func() { n.Dismiss(t.ID) })

	if persist {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if _, err := n.client.CreateNotification(ctx, msg, typ, ""); err != nil {
				n.log.WithError(err).Debug("persist toast failed")
			}
		}()
	}
	return t.ID
}

// Dismiss removes a toast before it expires.
func (n *Notifier) Dismiss(id string) {
	n.mu.Lock()
	idx := -1
	for i, t := range n.toasts {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		n.toasts = append(n.toasts[:idx], n.toasts[idx+1:]...)
	}
	n.mu.Unlock()
	if idx >= 0 {
		n.emit()
	}
}

// Snapshot returns the current toasts and history, newest first.
func (n *Notifier) Snapshot() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.snapshotLocked()
}

func (n *Notifier) snapshotLocked() State {
	s := State{
		Toasts:        append([]Toast(nil), n.toasts...),
		Notifications: make([]Notification, 0, len(n.history)),
	}
	for _, item := range n.history {
		s.Notifications = append(s.Notifications, item)
		if !item.Read {
			s.Unread++
		}
	}
	sort.Slice(s.Notifications, func(i, j int) bool {
		a, b := s.Notifications[i], s.Notifications[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return s
}

func (n *Notifier) emit() {
	n.mu.Lock()
	ls := append(([]func(State))(nil), n.listeners...)
	s := n.snapshotLocked()
	n.mu.Unlock()
	for _, fn := range ls {
		fn(s)
	}
}

// Merge upserts items into the history. The last write for an id wins.
func (n *Notifier) Merge(items ...Notification) {
	if len(items) == 0 {
		return
	}
	n.mu.Lock()
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		n.history[it.ID] = it
	}
	n.mu.Unlock()
	n.emit()
}

// Refresh fetches the history once and merges it.
func (n *Notifier) Refresh(ctx context.Context) error {
	list, err := n.client.Notifications(ctx, false)
	if err != nil {
		return err
	}
	n.Merge(list...)
	return nil
}

// MarkRead flips the local copy first, then tells the API. A failed call is
// left for the next poll to reconcile.
func (n *Notifier) MarkRead(ctx context.Context, id string) error {
	n.mu.Lock()
	if it, ok := n.history[id]; ok {
		it.Read = true
		n.history[id] = it
	}
	n.mu.Unlock()
	n.emit()
	return n.client.MarkNotificationRead(ctx, id)
}

func (n *Notifier) MarkAllRead(ctx context.Context) error {
	n.mu.Lock()
	for id, it := range n.history {
		it.Read = true
		n.history[id] = it
	}
	n.mu.Unlock()
	n.emit()
	return n.client.MarkAllNotificationsRead(ctx)
}

func (n *Notifier) Delete(ctx context.Context, id string) error {
	n.mu.Lock()
	delete(n.history, id)
	n.mu.Unlock()
	n.emit()
	return n.client.DeleteNotification(ctx, id)
}

// Run probes the session, then polls and streams until ctx is done.
func (n *Notifier) Run(ctx context.Context) error {
	s := n.client.Probe(ctx)
	n.SetAuthenticated(s.Authenticated)
	if !s.Authenticated {
		return ErrNotAuthenticated
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		n.pollLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		n.streamLoop(ctx)
	}()
	wg.Wait()
	return ctx.Err()
}

func (n *Notifier) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(n.pollInterval)
	defer ticker.Stop()
	for {
		if err := n.Refresh(ctx); err != nil && ctx.Err() == nil {
			n.log.WithError(err).Warn("poll notifications failed")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (n *Notifier) streamLoop(ctx context.Context) {
	b := n.newBackoff()
	for {
		err := n.client.Stream(ctx, func(ev Event) { n.handleEvent(ev, b) })
		if ctx.Err() != nil {
			return
		}
		wait := b.NextBackOff()
		if wait == backoff.Stop {
			n.log.WithError(err).Warn("notification stream gave up")
			return
		}
		n.log.WithError(err).WithField("retry_in", wait.String()).Debug("notification stream closed")
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (n *Notifier) handleEvent(ev Event, b backoff.BackOff) {
	switch ev.Name {
	case EventConnected:
		b.Reset()
	case EventNotification:
		var item Notification
		if err := json.Unmarshal(ev.Data, &item); err != nil {
			n.log.WithError(err).Debug("skip malformed notification event")
			return
		}
		if item.ID == "" {
			item.ID = ev.ID
		}
		n.Merge(item)
	}
}
