package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/DoyleJ11/user-manager/internal/httpx"
	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_FirstUserBecomesAdmin(t *testing.T) {
	store := NewMemoryRegistrationStore()
	boot := NewBootstrapper(store)

	user, err := boot.Register(context.Background(), "maria", "maria@example.com", "hash1")
	require.NoError(t, err)

	assert.Equal(t, permissions.RoleAdmin, user.Role)
	assert.True(t, user.Active)
	assert.Equal(t, "hash1", user.HashedPassword)

	stored, ok := store.Users[user.UserID]
	require.True(t, ok)
	assert.Equal(t, "maria", stored.Username)

	require.Len(t, store.Profiles, 1)
	for _, p := range store.Profiles {
		assert.Equal(t, user.UserID, p.UserID)
		assert.Equal(t, "maria", p.Name)
	}
}

func TestRegister_SecondUserStartsLocked(t *testing.T) {
	store := NewMemoryRegistrationStore()
	boot := NewBootstrapper(store)
	ctx := context.Background()

	_, err := boot.Register(ctx, "maria", "maria@example.com", "hash1")
	require.NoError(t, err)

	user, err := boot.Register(ctx, "j.doe", "jdoe@example.com", "hash2")
	require.NoError(t, err)

	assert.Equal(t, permissions.RoleUser, user.Role)
	assert.False(t, user.Active)
	assert.Len(t, store.Users, 2)
	assert.Len(t, store.Profiles, 2)
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	store := NewMemoryRegistrationStore()
	boot := NewBootstrapper(store)
	ctx := context.Background()

	_, err := boot.Register(ctx, "maria", "maria@example.com", "hash1")
	require.NoError(t, err)

	_, err = boot.Register(ctx, "maria", "other@example.com", "hash2")
	assert.ErrorIs(t, err, httpx.ErrConflict)

	assert.Len(t, store.Users, 1)
	assert.Len(t, store.Profiles, 1)
}

// profileFailStore injects a failure between the account insert and the
// profile insert.
type profileFailStore struct {
	inner *MemoryRegistrationStore
}

func (s profileFailStore) InTx(ctx context.Context, fn func(tx RegistrationTx) error) error {
	return s.inner.InTx(ctx, func(tx RegistrationTx) error {
		return fn(profileFailTx{tx})
	})
}

type profileFailTx struct {
	RegistrationTx
}

func (t profileFailTx) CreateProfile(profile *Profile) error {
	return errors.New("profile insert failed")
}

func TestRegister_AtomicOnProfileFailure(t *testing.T) {
	store := NewMemoryRegistrationStore()
	boot := NewBootstrapper(profileFailStore{inner: store})

	_, err := boot.Register(context.Background(), "maria", "maria@example.com", "hash1")
	require.Error(t, err)

	// Neither row may be visible after the rollback.
	assert.Empty(t, store.Users)
	assert.Empty(t, store.Profiles)

	// And a retry still bootstraps the admin role.
	user, err := NewBootstrapper(store).Register(context.Background(), "maria", "maria@example.com", "hash1")
	require.NoError(t, err)
	assert.Equal(t, permissions.RoleAdmin, user.Role)
	assert.True(t, user.Active)
}

func TestNewAccountID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id, err := NewAccountID()
		require.NoError(t, err)
		// 15 bytes base32 without padding is 24 characters.
		assert.Len(t, id, 24)
		assert.False(t, seen[id], "duplicate id")
		seen[id] = true
	}
}
