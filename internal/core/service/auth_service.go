package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/base-platform/account-api/internal/core/domain"
	"github.com/base-platform/account-api/internal/core/ports"
	"github.com/base-platform/account-api/internal/token"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	tracker  ports.ActivityTracker
	denylist ports.TokenDenylist
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, tracker ports.ActivityTracker, denylist ports.TokenDenylist, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, tracker: tracker, denylist: denylist, log: log}
}

// Register creates an account with the default USER role and issues a token
// for it. Username and email uniqueness are checked independently so the
// caller sees which one collided.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	user, err := s.createUser(ctx, username, email, password, domain.RoleUser)
	if err != nil {
		return "", nil, err
	}

	tkn, err := s.codec.Generate(user.Username, false)
	if err != nil {
		return "", nil, err
	}
	return tkn, user, nil
}

// Login verifies credentials and issues a token whose admin claim reflects
// the user's current role. Unknown user and wrong password are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.codec.Generate(user.Username, user.IsAdmin())
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	return tkn, user, nil
}

// RegisterByAdmin creates an account with the caller-chosen role. Unlike
// Register, failures surface as-is; the handler path is admin-only.
func (s *AuthService) RegisterByAdmin(ctx context.Context, username, email, password string, isAdmin bool) (*domain.User, error) {
	return s.createUser(ctx, username, email, password, domain.RoleFor(isAdmin))
}

// Logout drops the caller's activity entry and best-effort revokes the
// presented token for its remaining lifetime. Revocation failures are
// logged, never surfaced: the token design is stateless and logout must
// always succeed.
func (s *AuthService) Logout(ctx context.Context, identity domain.Identity, rawToken string) {
	s.tracker.MarkInactive(identity.Username)

	if rawToken == "" {
		return
	}
	ttl := s.codec.RemainingTTL(rawToken)
	if ttl <= 0 {
		return
	}
	if err := s.denylist.Revoke(ctx, rawToken, ttl); err != nil {
		s.log.Warn().Err(err).Str("username", identity.Username).Msg("token revocation failed")
	}
}

func (s *AuthService) createUser(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	if taken, err := s.repo.ExistsByUsername(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrUsernameTaken
	}

	if taken, err := s.repo.ExistsByEmail(ctx, email); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

var _ ports.AuthService = (*AuthService)(nil)
