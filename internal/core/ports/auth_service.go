package ports

import (
	"context"

	"github.com/base-platform/account-api/internal/core/domain"
)

// AuthService implements registration, login and logout.
type AuthService interface {
	// Register creates a USER-role account and returns a signed token for it.
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	// Login verifies credentials and returns a signed token. Every failure
	// collapses to domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// RegisterByAdmin creates an account with the caller-chosen role.
	RegisterByAdmin(ctx context.Context, username, email, password string, isAdmin bool) (*domain.User, error)
	// Logout clears the caller's activity entry and best-effort revokes the
	// presented token. Never fails from the caller's perspective.
	Logout(ctx context.Context, identity domain.Identity, rawToken string)
}
