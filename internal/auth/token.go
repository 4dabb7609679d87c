package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/DoyleJ11/user-manager/internal/httpx"
	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/DoyleJ11/user-manager/internal/utils"
)

const (
	// SessionLifetime is the absolute lifetime granted at issue and at each
	// renewal.
	SessionLifetime = 30 * 24 * time.Hour

	// renewalWindow: once less than this much lifetime remains, validation
	// extends the session. Idle sessions younger than half their lifetime
	// never trigger a write.
	renewalWindow = 15 * 24 * time.Hour

	tokenBytes = 20
)

// Cookie-safe alphabet; no padding so the value never needs quoting.
var tokenEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Service issues, validates and invalidates sessions. The raw token only ever
// exists in the cookie and in transit through these methods; the store sees
// the derived id.
type Service struct {
	sessions SessionStore
	users    UserGetter
	now      func() time.Time
}

func NewService(sessions SessionStore, users UserGetter) *Service {
	return &Service{sessions: sessions, users: users, now: time.Now}
}

// GenerateToken returns a fresh 160-bit random token.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return tokenEncoding.EncodeToString(buf), nil
}

// SessionIDFromToken derives the storage id. One-way: the token cannot be
// recovered from a stored id.
func SessionIDFromToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Issue creates a session for userID and returns the raw token for the cookie
// along with the stored row.
func (s *Service) Issue(ctx context.Context, userID string) (string, *Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", nil, err
	}

	session := &Session{
		SessionID: SessionIDFromToken(token),
		UserID:    userID,
		ExpiresAt: s.now().Add(SessionLifetime),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// Validate resolves a token to its session and actor. An unknown token yields
// (nil, nil, nil); an expired session is deleted and yields the same. A
// session past the renewal threshold gets its expiry pushed to now+lifetime
// before being returned, so active users stay logged in indefinitely.
func (s *Service) Validate(ctx context.Context, token string) (*utils.SessionData, *permissions.Actor, error) {
	id := SessionIDFromToken(token)

	session, err := s.sessions.FindByID(ctx, id)
	if errors.Is(err, httpx.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	if !now.Before(session.ExpiresAt) {
		// Hard expiry, no grace window.
		if err := s.sessions.DeleteByID(ctx, id); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	if !now.Before(session.ExpiresAt.Add(-renewalWindow)) {
		session.ExpiresAt = now.Add(SessionLifetime)
		if err := s.sessions.UpdateExpiry(ctx, id, session.ExpiresAt); err != nil {
			return nil, nil, err
		}
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if errors.Is(err, httpx.ErrNotFound) {
		// Owner is gone; the session is garbage.
		if err := s.sessions.DeleteByID(ctx, id); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	data := &utils.SessionData{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}
	actor := &permissions.Actor{
		ID:       user.UserID,
		Username: user.Username,
		Role:     user.Role,
	}
	return data, actor, nil
}

// Invalidate deletes the session; absent ids are not an error.
func (s *Service) Invalidate(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteByID(ctx, sessionID)
}
