package ports

import (
	"context"

	"github.com/base-platform/account-api/internal/core/domain"
)

// UpdateUserInput carries a profile update. Password is applied only when
// non-empty; IsAdmin is honoured only on the admin-driven path.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// UserService implements user CRUD on top of the repository.
type UserService interface {
	CurrentUser(ctx context.Context, username string) (domain.Info, error)
	AllUsers(ctx context.Context) ([]domain.Info, error)
	// UpdateCurrentUser updates the caller's own profile; role is untouched.
	UpdateCurrentUser(ctx context.Context, username string, input UpdateUserInput) error
	// UpdateUser updates an arbitrary account by id, including its role.
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) error
	// DeleteUser removes an account by id, rejecting self-deletion.
	DeleteUser(ctx context.Context, id string, caller domain.Identity) error
}
