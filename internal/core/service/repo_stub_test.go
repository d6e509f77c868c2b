package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/base-platform/account-api/internal/core/domain"
)

// stubUserRepo is an in-memory ports.UserRepository for tests.
type stubUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, cloneUser(u))
	}
	return all, nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubDenylist records revocations in memory.
type stubDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[token] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[token]
	return ok, nil
}
