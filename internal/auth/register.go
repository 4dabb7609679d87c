package auth

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/DoyleJ11/user-manager/internal/httpx"
	"github.com/DoyleJ11/user-manager/internal/permissions"
	"github.com/google/uuid"
)

// NewAccountID returns a random 120-bit id, base32 lowercase.
func NewAccountID() (string, error) {
	buf := make([]byte, 15)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating account id: %w", err)
	}
	return tokenEncoding.EncodeToString(buf), nil
}

// Bootstrapper creates accounts with their paired profiles. The very first
// account becomes an active administrator; everyone after that starts as an
// inactive standard user awaiting admin approval.
type Bootstrapper struct {
	store RegistrationStore
}

func NewBootstrapper(store RegistrationStore) *Bootstrapper {
	return &Bootstrapper{store: store}
}

// Register creates the account and profile in one transaction. The username
// must already be normalized and shape-validated, and passwordHash must be
// the KDF output; no plaintext crosses this boundary. The count check runs
// inside the transaction so the first-user decision and the insert cannot be
// separated by a commit.
func (b *Bootstrapper) Register(ctx context.Context, username, email, passwordHash string) (*User, error) {
	id, err := NewAccountID()
	if err != nil {
		return nil, err
	}

	user := &User{
		UserID:         id,
		Username:       username,
		Email:          email,
		HashedPassword: passwordHash,
		Role:           permissions.RoleUser,
		Active:         false,
	}

	err = b.store.InTx(ctx, func(tx RegistrationTx) error {
		count, err := tx.CountUsers()
		if err != nil {
			return err
		}
		if count == 0 {
			user.Role = permissions.RoleAdmin
			user.Active = true
		}

		if err := tx.CreateUser(user); err != nil {
			return err
		}
		return tx.CreateProfile(&Profile{
			ID:     uuid.NewString(),
			UserID: id,
			Name:   username,
		})
	})
	if err != nil {
		if httpx.IsUniqueViolation(err) {
			return nil, httpx.ErrConflict
		}
		return nil, err
	}

	return user, nil
}
