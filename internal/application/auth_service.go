package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

const probeTimeout = 3 * time.Second

type AuthService struct {
	Users    repo.UserRepository
	Sessions repo.SessionStore
	Tokens   repo.TokenStore
	JWT      *helpers.JWTManager
	Search   provider.SearchIndex
	Storage  provider.ObjectStore
	Mail     *Mailer
	Activity *ActivityService
	Logger   *logrus.Logger

	SessionTTL     time.Duration
	ResetTokenTTL  time.Duration
	VerifyTokenTTL time.Duration

	probes singleflight.Group
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// SessionUser is the user block of the session probe.
type SessionUser struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	Role        entity.Role `json:"role"`
	Permissions []string    `json:"permissions"`
	IsVerified  bool        `json:"is_verified"`
}

// SessionView is the answer of the "who am I" probe.
type SessionView struct {
	Authenticated bool         `json:"authenticated"`
	Role          entity.Role  `json:"role,omitempty"`
	User          *SessionUser `json:"user,omitempty"`
}

func NewAuthService(users repo.UserRepository, sessions repo.SessionStore, tokens repo.TokenStore, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:          users,
		Sessions:       sessions,
		Tokens:         tokens,
		JWT:            jwt,
		Logger:         logger,
		SessionTTL:     24 * time.Hour,
		ResetTokenTTL:  30 * time.Minute,
		VerifyTokenTTL: 24 * time.Hour,
	}
}

func newOneTimeToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func sessionFor(u *entity.User, sid string) *repo.Session {
	return &repo.Session{
		UserID:      u.ID,
		SID:         sid,
		Email:       u.Email,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Role:        string(u.Role),
		Permissions: u.Permissions,
		Verified:    u.IsVerified,
	}
}

func (s *AuthService) index(ctx context.Context, u *entity.User) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexUser(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
	}
}

func (s *AuthService) Signup(ctx context.Context, actor Actor, name, email, password string) (*entity.User, error) {
	email = normalizeEmail(email)
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:    email,
		Password: hash,
		Name:     helpers.NormalizeName(name),
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.index(ctx, u)
	if err := s.sendVerification(ctx, u); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("issue verify token failed")
	}
	actor.UserID = u.ID
	s.Activity.Record(ctx, actor, "user.signup", "user", u.ID, nil)
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates access/refresh tokens under a fresh session id and
// replaces the user's Redis session.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid, string(u.Role))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid, string(u.Role))
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}
	if err := s.Sessions.Save(ctx, sessionFor(u, sid), s.SessionTTL); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) Login(ctx context.Context, actor Actor, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	actor.UserID, actor.Role = u.ID, u.Role
	s.Activity.Record(ctx, actor, "user.login", "user", u.ID, nil)
	return u, pair, nil
}

// Refresh rotates the session id and both tokens. The refresh token must
// carry the session id currently stored in Redis.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, TokenPair{}, ErrInvalidToken
	}
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidToken
		}
		return nil, TokenPair{}, err
	}
	if sess.SID != claims.SessionID {
		return nil, TokenPair{}, ErrInvalidToken
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, TokenPair{}, ErrInvalidToken
		}
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, actor Actor) error {
	if actor.UserID == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, actor.UserID); err != nil {
		return err
	}
	s.Activity.Record(ctx, actor, "user.logout", "user", actor.UserID, nil)
	return nil
}

// Authorize resolves an access token to its live session. The session, not
// the token, is the source of truth for role and permissions.
func (s *AuthService) Authorize(ctx context.Context, accessToken string) (*repo.Session, error) {
	if accessToken == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sess, err := s.Sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if sess.SID != claims.SessionID {
		return nil, ErrInvalidToken
	}
	return sess, nil
}

// Probe answers the session probe. It never fails: anything short of a
// live session is reported as unauthenticated. Concurrent probes with the
// same token share one Redis read.
func (s *AuthService) Probe(ctx context.Context, accessToken string) SessionView {
	if accessToken == "" {
		return SessionView{}
	}
	v, err, _ := s.probes.Do(accessToken, func() (any, error) {
		// outlives any single waiter
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), probeTimeout)
		defer cancel()
		return s.Authorize(pctx, accessToken)
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidToken) && s.Logger != nil {
			s.Logger.WithError(err).Warn("session probe failed")
		}
		return SessionView{}
	}
	sess := v.(*repo.Session)
	role := entity.Role(sess.Role)
	perms := sess.Permissions
	if perms == nil {
		perms = []string{}
	}
	return SessionView{
		Authenticated: true,
		Role:          role,
		User: &SessionUser{
			ID:          sess.UserID,
			Email:       sess.Email,
			Name:        sess.Name,
			AvatarURL:   sess.AvatarURL,
			Role:        role,
			Permissions: perms,
			IsVerified:  sess.Verified,
		},
	}
}

// RequestPasswordReset mails a reset link when the address is registered.
// Unknown addresses succeed silently.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return err
	}
	token, err := newOneTimeToken()
	if err != nil {
		return err
	}
	if err := s.Tokens.Put(ctx, repo.TokenReset, token, u.ID, s.ResetTokenTTL); err != nil {
		return err
	}
	s.Mail.ResetPassword(ctx, u, token)
	return nil
}

// ResetPassword consumes a reset token and ends the user's session.
func (s *AuthService) ResetPassword(ctx context.Context, actor Actor, token, newPassword string) error {
	userID, err := s.Tokens.Take(ctx, repo.TokenReset, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if err := s.Sessions.Delete(ctx, userID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("drop session after reset failed")
	}
	actor.UserID = userID
	s.Activity.Record(ctx, actor, "user.password_reset", "user", userID, nil)
	return nil
}

func (s *AuthService) sendVerification(ctx context.Context, u *entity.User) error {
	token, err := newOneTimeToken()
	if err != nil {
		return err
	}
	if err := s.Tokens.Put(ctx, repo.TokenVerify, token, u.ID, s.VerifyTokenTTL); err != nil {
		return err
	}
	s.Mail.VerifyEmail(ctx, u, token)
	return nil
}

func (s *AuthService) RequestVerification(ctx context.Context, actor Actor) error {
	u, err := s.Profile(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	return s.sendVerification(ctx, u)
}

func (s *AuthService) VerifyEmail(ctx context.Context, actor Actor, token string) error {
	userID, err := s.Tokens.Take(ctx, repo.TokenVerify, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if err := s.Users.SetVerified(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if err := s.Sessions.Patch(ctx, userID, map[string]any{"is_verified": true}); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("patch session failed")
	}
	if u, err := s.Users.GetByID(ctx, userID); err == nil {
		s.index(ctx, u)
	}
	actor.UserID = userID
	s.Activity.Record(ctx, actor, "user.verify_email", "user", userID, nil)
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type ProfileInput struct {
	Name      *string
	AvatarURL *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor Actor, in ProfileInput) (*entity.User, error) {
	u, err := s.Profile(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = helpers.NormalizeName(*in.Name)
	}
	if in.AvatarURL != nil {
		u.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := s.Sessions.Patch(ctx, u.ID, map[string]any{"name": u.Name, "avatar_url": u.AvatarURL}); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("patch session failed")
	}
	s.index(ctx, u)
	s.Activity.Record(ctx, actor, "user.update_profile", "user", u.ID, nil)
	return u, nil
}

// UploadAvatar stores the image under avatars/<user>/ and points the profile at it.
func (s *AuthService) UploadAvatar(ctx context.Context, actor Actor, filename, contentType string, data []byte) (*entity.User, error) {
	if s.Storage == nil {
		return nil, ErrStorageDisabled
	}
	object := "avatars/" + actor.UserID + "/" + uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	url, err := s.Storage.Put(ctx, object, contentType, data)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("object", object).Error("avatar upload failed")
		}
		return nil, err
	}
	return s.UpdateProfile(ctx, actor, ProfileInput{AvatarURL: &url})
}
