package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Notification types accepted by the API.
const (
	TypeInfo    = "info"
	TypeSuccess = "success"
	TypeWarning = "warning"
	TypeError   = "error"
)

func validType(t string) bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeError:
		return true
	}
	return false
}

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifications lists the caller's history, newest first.
func (c *Client) Notifications(ctx context.Context, unreadOnly bool) ([]Notification, error) {
	var q url.Values
	if unreadOnly {
		q = url.Values{"unread": {"true"}}
	}
	var list []Notification
	if err := c.doJSON(ctx, http.MethodGet, "/api/notifications", q, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateNotification(ctx context.Context, message, typ, link string) (*Notification, error) {
	body := map[string]string{"message": message, "type": typ}
	if link != "" {
		body["link"] = link
	}
	var n Notification
	if err := c.doJSON(ctx, http.MethodPost, "/api/notifications", nil, body, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPatch, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/notifications/read-all", nil, nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/notifications/"+url.PathEscape(id), nil, nil, nil)
}
