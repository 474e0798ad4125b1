package client

import (
	"context"
	"net/http"

	"github.com/oksasatya/hotel-management/pkg/navigation"
)

type User struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	AvatarURL   string          `json:"avatar_url,omitempty"`
	Role        navigation.Role `json:"role"`
	Permissions []string        `json:"permissions"`
	IsVerified  bool            `json:"is_verified"`
}

// Session is the answer of the "who am I" probe.
type Session struct {
	Authenticated bool            `json:"authenticated"`
	Role          navigation.Role `json:"role,omitempty"`
	User          *User           `json:"user,omitempty"`
}

func (s Session) UserContext() navigation.UserContext {
	if !s.Authenticated {
		return navigation.UserContext{}
	}
	return navigation.UserContext{Authenticated: true, Role: s.Role}
}

// Probe asks the API who the caller is. Transport failures, non-OK answers
// and undecodable bodies all read as unauthenticated.
func (c *Client) Probe(ctx context.Context) Session {
	var s Session
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/session", nil, nil, &s); err != nil {
		c.log.WithError(err).Debug("session probe failed")
		return Session{}
	}
	if !s.Authenticated {
		return Session{}
	}
	return s
}

// Login exchanges credentials for session cookies kept in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var u User
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", nil, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

// Guard answers route questions for whoever the client is signed in as.
type Guard struct {
	Client  *Client
	Manager *navigation.Manager
}

func NewGuard(c *Client, m *navigation.Manager) *Guard {
	if m == nil {
		m = navigation.Default()
	}
	return &Guard{Client: c, Manager: m}
}

// Check probes the session and evaluates path against the route table.
func (g *Guard) Check(ctx context.Context, path string) (navigation.Decision, Session) {
	s := g.Client.Probe(ctx)
	return g.Manager.CheckRoutePermission(path, s.UserContext()), s
}

// Menu returns the navigation entries visible to the probed session.
func (g *Guard) Menu(ctx context.Context) ([]navigation.Route, Session) {
	s := g.Client.Probe(ctx)
	return g.Manager.NavigationRoutes(s.UserContext()), s
}
