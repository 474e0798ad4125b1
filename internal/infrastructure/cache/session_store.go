package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/hotel-management/internal/domain/repository"
)

func SessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// SessionStore keeps sessions as Redis hashes under user:session:<id>.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, sess *repository.Session, ttl time.Duration) error {
	key := SessionKey(sess.UserID)
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":     sess.UserID,
		"sid":         sess.SID,
		"email":       sess.Email,
		"name":        sess.Name,
		"avatar_url":  sess.AvatarURL,
		"role":        sess.Role,
		"permissions": strings.Join(sess.Permissions, ","),
		"is_verified": strconv.FormatBool(sess.Verified),
		"logged_in":   "true",
		"created_at":  nowRFC3339(),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*repository.Session, error) {
	data, err := s.rdb.HGetAll(ctx, SessionKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data["sid"] == "" {
		return nil, repository.ErrNotFound
	}
	verified, _ := strconv.ParseBool(data["is_verified"])
	return &repository.Session{
		UserID:      data["user_id"],
		SID:         data["sid"],
		Email:       data["email"],
		Name:        data["name"],
		AvatarURL:   data["avatar_url"],
		Role:        data["role"],
		Permissions: splitPerms(data["permissions"]),
		Verified:    verified,
	}, nil
}

func (s *SessionStore) Patch(ctx context.Context, userID string, fields map[string]any) error {
	key := SessionKey(userID)
	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil || n == 0 {
		return err
	}
	patch := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		switch t := v.(type) {
		case bool:
			v = strconv.FormatBool(t)
		case []string:
			v = strings.Join(t, ",")
		}
		patch[k] = v
	}
	patch["updated_at"] = nowRFC3339()
	// HSET does not touch the key's TTL.
	return s.rdb.HSet(ctx, key, patch).Err()
}

func splitPerms(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, SessionKey(userID)).Err()
}

// TokenStore keeps one-time tokens as plain keys token:<kind>:<token>.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func tokenKey(kind, token string) string {
	return "token:" + kind + ":" + token
}

func (t *TokenStore) Put(ctx context.Context, kind, token, userID string, ttl time.Duration) error {
	return t.rdb.Set(ctx, tokenKey(kind, token), userID, ttl).Err()
}

func (t *TokenStore) Take(ctx context.Context, kind, token string) (string, error) {
	userID, err := t.rdb.GetDel(ctx, tokenKey(kind, token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", repository.ErrNotFound
	}
	return userID, err
}

var (
	_ repository.SessionStore = (*SessionStore)(nil)
	_ repository.TokenStore   = (*TokenStore)(nil)
)
