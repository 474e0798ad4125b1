package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hotel-management/pkg/navigation"
)

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"success": status < 400,
		"message": message,
		"data":    data,
	})
}

func newTestClient(t *testing.T, h http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/", opts...)
	require.NoError(t, err)
	return c, srv
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:8080")
	assert.Error(t, err)
	_, err = New("/api")
	assert.Error(t, err)
}

func TestAPIErrorMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, "room already booked", nil)
	})
	mux.HandleFunc("POST /api/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	mux.HandleFunc("DELETE /api/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusNotFound, "  ", nil)
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.Notifications(ctx, false)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "room already booked", apiErr.Message)

	err = c.MarkAllNotificationsRead(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fallbackMessage, apiErr.Message)
	assert.True(t, IsStatus(err, http.StatusBadGateway))

	err = c.DeleteNotification(ctx, "n-1")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, fallbackMessage, apiErr.Message)
}

func TestNotificationsQuery(t *testing.T) {
	var gotUnread atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/notifications", func(w http.ResponseWriter, r *http.Request) {
		gotUnread.Store(r.URL.Query().Get("unread"))
		writeEnvelope(w, http.StatusOK, "notifications", []Notification{{ID: "n-1", Message: "hi", Type: TypeInfo}})
	})
	c, _ := newTestClient(t, mux)

	list, err := c.Notifications(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "true", gotUnread.Load())
	require.Len(t, list, 1)
	assert.Equal(t, "n-1", list[0].ID)
}

func TestProbe(t *testing.T) {
	var mode atomic.Value
	mode.Store("ok")
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		switch mode.Load().(string) {
		case "ok":
			writeEnvelope(w, http.StatusOK, "session", Session{
				Authenticated: true,
				Role:          navigation.RoleAdmin,
				User:          &User{ID: "u-1", Email: "ada@example.com", Role: navigation.RoleAdmin},
			})
		case "anon":
			writeEnvelope(w, http.StatusOK, "session", Session{})
		case "down":
			writeEnvelope(w, http.StatusServiceUnavailable, "maintenance", nil)
		case "garbage":
			_, _ = w.Write([]byte("{not json"))
		}
	})
	c, srv := newTestClient(t, mux)
	ctx := context.Background()

	s := c.Probe(ctx)
	assert.True(t, s.Authenticated)
	assert.Equal(t, navigation.RoleAdmin, s.Role)
	require.NotNil(t, s.User)
	assert.Equal(t, "u-1", s.User.ID)

	for _, m := range []string{"anon", "down", "garbage"} {
		mode.Store(m)
		assert.Equal(t, Session{}, c.Probe(ctx), m)
	}

	srv.Close()
	assert.False(t, c.Probe(ctx).Authenticated)
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "Password123" {
			writeEnvelope(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "tok-1", Path: "/", HttpOnly: true})
		writeEnvelope(w, http.StatusOK, "login successful", User{ID: "u-1", Email: body["email"], Role: navigation.RoleUser})
	})
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("access_token")
		if err != nil || ck.Value != "tok-1" {
			writeEnvelope(w, http.StatusOK, "session", Session{})
			return
		}
		writeEnvelope(w, http.StatusOK, "session", Session{Authenticated: true, Role: navigation.RoleUser})
	})
	c, _ := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.Login(ctx, "ada@example.com", "wrong-password")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	assert.False(t, c.Probe(ctx).Authenticated)

	u, err := c.Login(ctx, "ada@example.com", "Password123")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "tok-1", c.Cookie("access_token"))
	assert.True(t, c.Probe(ctx).Authenticated)
}

func TestBearerHeader(t *testing.T) {
	var got atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("Authorization"))
		writeEnvelope(w, http.StatusOK, "session", Session{})
	})
	c, _ := newTestClient(t, mux, WithBearer(" tok-2 "))
	c.Probe(context.Background())
	assert.Equal(t, "Bearer tok-2", got.Load())
}

func TestGuard(t *testing.T) {
	var role atomic.Value
	role.Store(navigation.RoleUser)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/auth/session", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, "session", Session{Authenticated: true, Role: role.Load().(navigation.Role)})
	})
	c, _ := newTestClient(t, mux)
	g := NewGuard(c, nil)
	ctx := context.Background()

	d, s := g.Check(ctx, "/admin/bookings")
	assert.True(t, s.Authenticated)
	assert.False(t, d.Allowed)
	assert.Equal(t, "/dashboard", d.Redirect)
	assert.Equal(t, navigation.ReasonForbiddenRole, d.Reason)

	role.Store(navigation.RoleAdmin)
	d, _ = g.Check(ctx, "/admin/bookings")
	assert.True(t, d.Allowed)

	menu, _ := g.Menu(ctx)
	paths := make([]string, 0, len(menu))
	for _, r := range menu {
		paths = append(paths, r.Path)
	}
	assert.Contains(t, paths, "/admin/reports")
	assert.NotContains(t, paths, "/superadmin")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("HOTEL_API_URL", "")
	t.Setenv("HOTEL_TOKEN", "")
	t.Setenv("HOTEL_POLL_INTERVAL", "")
	cfg := LoadConfig()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.PollInterval)

	t.Setenv("HOTEL_API_URL", "https://api.hotel.test")
	t.Setenv("HOTEL_POLL_INTERVAL", "5s")
	cfg = LoadConfig()
	assert.Equal(t, "https://api.hotel.test", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)

	t.Setenv("HOTEL_POLL_INTERVAL", "-1s")
	assert.Equal(t, DefaultPollInterval, LoadConfig().PollInterval)
}
