package auth

import (
	"context"
	"sync"
	"time"

	"github.com/DoyleJ11/user-manager/internal/httpx"
)

// In-memory store implementations. They keep the session and registration
// services testable without a database and back local development when no
// postgres is around.

type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

func (s *MemorySessionStore) Create(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *MemorySessionStore) FindByID(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &session, nil
}

func (s *MemorySessionStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	session.ExpiresAt = expiresAt
	s.sessions[id] = session
	return nil
}

func (s *MemorySessionStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

func (s *MemoryUserStore) Put(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.UserID] = user
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &user, nil
}

// MemoryRegistrationStore stages writes and applies them only when the
// transaction function returns nil, mirroring the all-or-nothing guarantee of
// the database transaction.
type MemoryRegistrationStore struct {
	mu       sync.Mutex
	Users    map[string]User
	Profiles map[string]Profile
}

func NewMemoryRegistrationStore() *MemoryRegistrationStore {
	return &MemoryRegistrationStore{
		Users:    make(map[string]User),
		Profiles: make(map[string]Profile),
	}
}

func (s *MemoryRegistrationStore) InTx(ctx context.Context, fn func(tx RegistrationTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryRegistrationTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}
	for _, u := range tx.users {
		s.Users[u.UserID] = u
	}
	for _, p := range tx.profiles {
		s.Profiles[p.ID] = p
	}
	return nil
}

type memoryRegistrationTx struct {
	store    *MemoryRegistrationStore
	users    []User
	profiles []Profile
}

func (t *memoryRegistrationTx) CountUsers() (int64, error) {
	return int64(len(t.store.Users) + len(t.users)), nil
}

func (t *memoryRegistrationTx) CreateUser(user *User) error {
	for _, existing := range t.store.Users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return httpx.ErrConflict
		}
	}
	t.users = append(t.users, *user)
	return nil
}

func (t *memoryRegistrationTx) CreateProfile(profile *Profile) error {
	t.profiles = append(t.profiles, *profile)
	return nil
}
