package repository

import (
	"context"
	"time"
)

// Session is the live login state of a user, one per user.
type Session struct {
	UserID      string   `json:"user_id"`
	SID         string   `json:"sid"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	AvatarURL   string   `json:"avatar_url"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Verified    bool     `json:"is_verified"`
}

type SessionStore interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	// Get returns ErrNotFound when the user has no live session.
	Get(ctx context.Context, userID string) (*Session, error)
	// Patch updates fields of a live session, keeping its TTL. Missing
	// sessions are left alone.
	Patch(ctx context.Context, userID string, fields map[string]any) error
	Delete(ctx context.Context, userID string) error
}

// Token kinds for one-time links.
const (
	TokenReset  = "reset"
	TokenVerify = "verify"
)

// TokenStore keeps one-time tokens for password reset and email verification.
type TokenStore interface {
	Put(ctx context.Context, kind, token, userID string, ttl time.Duration) error
	// Take returns the user id and deletes the token. ErrNotFound when the
	// token is unknown or expired.
	Take(ctx context.Context, kind, token string) (string, error)
}
