package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DoyleJ11/user-manager/internal/httpx"
	"gorm.io/gorm"
)

// GormSessionStore backs the session service with the app_auth.sessions table.
type GormSessionStore struct {
	DB *gorm.DB
}

func (s GormSessionStore) Create(ctx context.Context, session *Session) error {
	if err := s.DB.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("%w: creating session: %v", httpx.ErrStoreFailure, err)
	}
	return nil
}

func (s GormSessionStore) FindByID(ctx context.Context, id string) (*Session, error) {
	var session Session
	err := s.DB.WithContext(ctx).First(&session, "session_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: finding session: %v", httpx.ErrStoreFailure, err)
	}
	return &session, nil
}

func (s GormSessionStore) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	err := s.DB.WithContext(ctx).Model(&Session{}).
		Where("session_id = ?", id).
		Update("expires_at", expiresAt).Error
	if err != nil {
		return fmt.Errorf("%w: extending session: %v", httpx.ErrStoreFailure, err)
	}
	return nil
}

func (s GormSessionStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.DB.WithContext(ctx).Delete(&Session{}, "session_id = ?", id).Error; err != nil {
		return fmt.Errorf("%w: deleting session: %v", httpx.ErrStoreFailure, err)
	}
	return nil
}

// GormUserStore provides the account reads the token service needs.
type GormUserStore struct {
	DB *gorm.DB
}

func (s GormUserStore) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.DB.WithContext(ctx).First(&user, "user_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httpx.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: finding user: %v", httpx.ErrStoreFailure, err)
	}
	return &user, nil
}

// GormRegistrationStore runs the registration unit of work inside a database
// transaction, so the account and its profile are never visible separately.
type GormRegistrationStore struct {
	DB *gorm.DB
}

func (s GormRegistrationStore) InTx(ctx context.Context, fn func(tx RegistrationTx) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormRegistrationTx{tx: tx})
	})
}

type gormRegistrationTx struct {
	tx *gorm.DB
}

func (t gormRegistrationTx) CountUsers() (int64, error) {
	var count int64
	if err := t.tx.Model(&User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: counting users: %v", httpx.ErrStoreFailure, err)
	}
	return count, nil
}

func (t gormRegistrationTx) CreateUser(user *User) error {
	// Omit associations: the profile insert is a separate, explicit step of
	// the same transaction.
	return t.tx.Omit("Profile", "Sessions").Create(user).Error
}

func (t gormRegistrationTx) CreateProfile(profile *Profile) error {
	return t.tx.Create(profile).Error
}
