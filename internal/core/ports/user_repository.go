package ports

import (
	"context"

	"github.com/base-platform/account-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Each call is atomic on its own; multi-step flows built on top of it
// (exists-then-create) are not.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
