package utils

import (
	"context"
	"time"

	"github.com/DoyleJ11/user-manager/internal/permissions"
)

type contextKey string

const (
	ContextActorKey   contextKey = "actor"
	ContextSessionKey contextKey = "session"
)

// SessionData is the request-scoped view of a session: the derived id (never
// the raw token) plus what the gate needs to refresh the cookie.
type SessionData struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

func WithActor(ctx context.Context, actor *permissions.Actor, session *SessionData) context.Context {
	ctx = context.WithValue(ctx, ContextActorKey, actor)
	return context.WithValue(ctx, ContextSessionKey, session)
}

// GetActorFromContext returns the authenticated actor, or nil for anonymous
// requests (or when the gate never ran).
func GetActorFromContext(ctx context.Context) *permissions.Actor {
	actor, ok := ctx.Value(ContextActorKey).(*permissions.Actor)
	if !ok {
		return nil
	}
	return actor
}

func GetSessionFromContext(ctx context.Context) *SessionData {
	session, ok := ctx.Value(ContextSessionKey).(*SessionData)
	if !ok {
		return nil
	}
	return session
}
