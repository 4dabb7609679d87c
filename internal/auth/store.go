package auth

import (
	"context"
	"time"
)

// SessionStore persists session rows keyed by derived id. Implementations
// return httpx.ErrNotFound (possibly wrapped) when the id is absent; deletes
// are idempotent.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, id string) (*Session, error)
	UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error
	DeleteByID(ctx context.Context, id string) error
}

// UserGetter is the read access the token service needs to resolve an actor.
type UserGetter interface {
	FindByID(ctx context.Context, id string) (*User, error)
}

// RegistrationTx is the unit of work available inside a registration
// transaction. All three calls commit or roll back together.
type RegistrationTx interface {
	CountUsers() (int64, error)
	CreateUser(user *User) error
	CreateProfile(profile *Profile) error
}

type RegistrationStore interface {
	InTx(ctx context.Context, fn func(tx RegistrationTx) error) error
}
