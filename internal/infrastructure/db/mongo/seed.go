package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/base-platform/account-api/internal/core/domain"
)

// SeedAdmin creates the bootstrap admin account if no account with that
// username exists yet. The role set itself is fixed at compile time, so this
// is the only persistence-side seeding the service needs.
func (r *UserRepository) SeedAdmin(ctx context.Context, username, password, email string, log zerolog.Logger) error {
	exists, err := r.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent replica may have seeded first.
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return nil
		}
		return err
	}

	log.Info().Str("username", username).Msg("bootstrap admin account created")
	return nil
}
