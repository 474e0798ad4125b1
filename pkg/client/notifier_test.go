package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gin-contrib/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hotel-management/pkg/navigation"
)

func TestReadEvents(t *testing.T) {
	n := Notification{ID: "n-1", Message: "Booking confirmed", Type: TypeSuccess}
	var buf bytes.Buffer
	require.NoError(t, sse.Encode(&buf, sse.Event{Event: EventConnected, Data: map[string]string{"user_id": "u-1"}}))
	buf.WriteString(": keep-alive comment\n\n")
	require.NoError(t, sse.Encode(&buf, sse.Event{Event: EventNotification, Id: "n-1", Data: n}))
	require.NoError(t, sse.Encode(&buf, sse.Event{Event: "note", Data: "line one\nline two"}))
	buf.WriteString("data: unnamed\r\n\r\n")
	buf.WriteString("event: truncated\ndata: lost")

	var got []Event
	require.NoError(t, readEvents(&buf, func(ev Event) { got = append(got, ev) }))
	require.Len(t, got, 4)

	assert.Equal(t, EventConnected, got[0].Name)
	assert.JSONEq(t, `{"user_id":"u-1"}`, string(got[0].Data))

	assert.Equal(t, EventNotification, got[1].Name)
	assert.Equal(t, "n-1", got[1].ID)
	var decoded Notification
	require.NoError(t, json.Unmarshal(got[1].Data, &decoded))
	assert.Equal(t, "Booking confirmed", decoded.Message)

	assert.Equal(t, "line one\nline two", string(got[2].Data))
	assert.Equal(t, "message", got[3].Name)
	assert.Equal(t, "unnamed", string(got[3].Data))
}

func TestStreamBackoffSchedule(t *testing.T) {
	b := newStreamBackoff()
	want := []time.Duration{1, 2, 4, 8, 16, 30, 30}
	for i, w := range want {
		assert.Equal(t, w*time.Second, b.NextBackOff(), "attempt %d", i)
	}
	b.Reset()
	assert.Equal(t, time.Second, b.NextBackOff())
}

func TestStreamRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notifications/stream", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "unauthorized", nil)
	})
	c, _ := newTestClient(t, mux)
	err := c.Stream(context.Background(), func(Event) { t.Fatal("no events expected") })
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestToastExpiresAndPersistsWhenSignedIn(t *testing.T) {
	var posts atomic.Int32
	var lastType atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		lastType.Store(body["type"])
		posts.Add(1)
		writeEnvelope(w, http.StatusCreated, "notification created", Notification{ID: "srv-1"})
	})
	c, _ := newTestClient(t, mux)
	n := NewNotifier(c)

	id := n.Toast("saved", TypeSuccess, 40*time.Millisecond)
	require.NotEmpty(t, id)
	require.Len(t, n.Snapshot().Toasts, 1)
	assert.Equal(t, id, n.Snapshot().Toasts[0].ID)
	assert.Eventually(t, func() bool { return len(n.Snapshot().Toasts) == 0 }, time.Second, 10*time.Millisecond)

	n.SetAuthenticated(true)
	n.Toast("heads up", "shout", 0)
	toasts := n.Snapshot().Toasts
	require.Len(t, toasts, 1)
	assert.Equal(t, TypeInfo, toasts[0].Type)
	assert.Equal(t, DefaultToastDuration, toasts[0].Duration)
	assert.Eventually(t, func() bool { return posts.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, TypeInfo, lastType.Load())

	n.Dismiss(toasts[0].ID)
	assert.Empty(t, n.Snapshot().Toasts)
}

func TestToastSwallowsPersistFailure(t *testing.T) {
	var posts atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		posts.Add(1)
		writeEnvelope(w, http.StatusInternalServerError, "internal server error", nil)
	})
	c, _ := newTestClient(t, mux)
	n := NewNotifier(c)
	n.SetAuthenticated(true)

	id := n.Toast("offline", TypeWarning, time.Minute)
	assert.Eventually(t, func() bool { return posts.Load() == 1 }, time.Second, 10*time.Millisecond)
	require.Len(t, n.Snapshot().Toasts, 1)
	assert.Equal(t, id, n.Snapshot().Toasts[0].ID)
}

func TestMergeOrdersNewestFirstAndLastWriteWins(t *testing.T) {
	c, _ := newTestClient(t, http.NewServeMux())
	n := NewNotifier(c)

	var changes atomic.Int32
	n.OnChange(func(State) { changes.Add(1) })

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n.Merge(
		Notification{ID: "a", Message: "old", CreatedAt: t0},
		Notification{ID: "b", Message: "new", CreatedAt: t0.Add(time.Hour)},
		Notification{ID: "", Message: "ignored"},
	)
	n.Merge(Notification{ID: "a", Message: "old", Read: true, CreatedAt: t0})

	s := n.Snapshot()
	require.Len(t, s.Notifications, 2)
	assert.Equal(t, "b", s.Notifications[0].ID)
	assert.Equal(t, "a", s.Notifications[1].ID)
	assert.True(t, s.Notifications[1].Read)
	assert.Equal(t, 1, s.Unread)
	assert.Equal(t, int32(2), changes.Load())
}

func TestOptimisticUpdates(t *testing.T) {
	var calls sync.Map
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/notifications/{id}/read", func(w http.ResponseWriter, r *http.Request) {
		calls.Store("read:"+r.PathValue("id"), true)
		writeEnvelope(w, http.StatusInternalServerError, "internal server error", nil)
	})
	mux.HandleFunc("POST /api/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		calls.Store("read-all", true)
		writeEnvelope(w, http.StatusOK, "all read", nil)
	})
	mux.HandleFunc("DELETE /api/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		calls.Store("delete:"+r.PathValue("id"), true)
		writeEnvelope(w, http.StatusOK, "deleted", nil)
	})
	c, _ := newTestClient(t, mux)
	n := NewNotifier(c)
	now := time.Now()
	n.Merge(
		Notification{ID: "a", CreatedAt: now},
		Notification{ID: "b", CreatedAt: now.Add(-time.Minute)},
		Notification{ID: "c", CreatedAt: now.Add(-2 * time.Minute)},
	)
	ctx := context.Background()

	err := n.MarkRead(ctx, "a")
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
	assert.True(t, n.Snapshot().Notifications[0].Read)
	_, ok := calls.Load("read:a")
	assert.True(t, ok)

	require.NoError(t, n.Delete(ctx, "b"))
	s := n.Snapshot()
	require.Len(t, s.Notifications, 2)
	assert.Equal(t, "c", s.Notifications[1].ID)

	require.NoError(t, n.MarkAllRead(ctx))
	assert.Equal(t, 0, n.Snapshot().Unread)
	_, ok = calls.Load("read-all")
	assert.True(t, ok)
	_, ok = calls.Load("delete:b")
	assert.True(t, ok)
}

func TestRunRequiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "session", Session{})
	})
	c, _ := newTestClient(t, mux)
	n := NewNotifier(c)
	assert.ErrorIs(t, n.Run(context.Background()), ErrNotAuthenticated)
	assert.False(t, n.Authenticated())
}

func TestRunPollsAndReconnects(t *testing.T) {
	var connects atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "session", Session{Authenticated: true, Role: navigation.RoleUser})
	})
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "notifications", []Notification{
			{ID: "n-1", Message: "from history", Type: TypeInfo, CreatedAt: time.Now().Add(-time.Hour)},
		})
	})
	mux.HandleFunc("GET /api/notifications/stream", func(w http.ResponseWriter, r *http.Request) {
		attempt := connects.Add(1)
		w.Header().Set("Content-Type", "text/event-stream")
		_ = sse.Encode(w, sse.Event{Event: EventConnected, Data: map[string]string{"user_id": "u-1"}})
		if attempt == 1 {
			_ = sse.Encode(w, sse.Event{Event: EventNotification, Id: "n-2", Data: Notification{
				ID: "n-2", Message: "from stream", Type: TypeSuccess, CreatedAt: time.Now(),
			}})
			return
		}
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	})
	c, _ := newTestClient(t, mux)
	n := NewNotifier(c,
		WithPollInterval(time.Hour),
		WithStreamBackoff(func() backoff.BackOff { return backoff.NewConstantBackOff(10 * time.Millisecond) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	assert.Eventually(t, func() bool {
		return len(n.Snapshot().Notifications) == 2 && connects.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	s := n.Snapshot()
	require.Len(t, s.Notifications, 2)
	assert.Equal(t, "n-2", s.Notifications[0].ID)
	assert.Equal(t, "n-1", s.Notifications[1].ID)
	assert.True(t, n.Authenticated())

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestHandleEventSkipsMalformed(t *testing.T) {
	c, _ := newTestClient(t, http.NewServeMux())
	n := NewNotifier(c)
	b := newStreamBackoff()
	b.NextBackOff()
	b.NextBackOff()

	n.handleEvent(Event{Name: EventNotification, Data: []byte(strings.Repeat("{", 3))}, b)
	assert.Empty(t, n.Snapshot().Notifications)

	n.handleEvent(Event{Name: EventNotification, ID: "n-9", Data: []byte(`{"message":"no id in body"}`)}, b)
	require.Len(t, n.Snapshot().Notifications, 1)
	assert.Equal(t, "n-9", n.Snapshot().Notifications[0].ID)

	n.handleEvent(Event{Name: EventConnected}, b)
	assert.Equal(t, time.Second, b.NextBackOff())
}
