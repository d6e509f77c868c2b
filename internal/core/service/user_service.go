package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/base-platform/account-api/internal/core/domain"
	"github.com/base-platform/account-api/internal/core/ports"
)

// UserService implements user CRUD on top of the repository.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) CurrentUser(ctx context.Context, username string) (domain.Info, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return domain.Info{}, err
	}
	return domain.InfoOf(user), nil
}

func (s *UserService) AllUsers(ctx context.Context) ([]domain.Info, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]domain.Info, 0, len(users))
	for _, u := range users {
		infos = append(infos, domain.InfoOf(u))
	}
	return infos, nil
}

// UpdateCurrentUser updates the caller's own profile. The role is never
// touched on this path.
func (s *UserService) UpdateCurrentUser(ctx context.Context, username string, input ports.UpdateUserInput) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.applyUpdate(ctx, user, input, user.Role)
}

// UpdateUser updates an arbitrary account by id, replacing its role from
// the admin flag.
func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.applyUpdate(ctx, user, input, domain.RoleFor(input.IsAdmin))
}

// DeleteUser removes the account with the given id. The account whose
// credentials authenticated this request cannot delete itself.
func (s *UserService) DeleteUser(ctx context.Context, id string, caller domain.Identity) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Username == caller.Username {
		return domain.ErrSelfDelete
	}
	return s.repo.Delete(ctx, id)
}

// applyUpdate re-checks uniqueness only for fields that actually changed and
// replaces the password only when a non-empty one was supplied.
func (s *UserService) applyUpdate(ctx context.Context, user *domain.User, input ports.UpdateUserInput, role domain.Role) error {
	if input.Username != user.Username {
		if taken, err := s.repo.ExistsByUsername(ctx, input.Username); err != nil {
			return err
		} else if taken {
			return domain.ErrUsernameTaken
		}
	}

	if input.Email != user.Email {
		if taken, err := s.repo.ExistsByEmail(ctx, input.Email); err != nil {
			return err
		} else if taken {
			return domain.ErrEmailTaken
		}
	}

	user.Username = input.Username
	user.Email = input.Email
	user.Role = role

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, user)
}

var _ ports.UserService = (*UserService)(nil)
