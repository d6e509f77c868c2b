package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/base-platform/account-api/internal/core/domain"
	"github.com/base-platform/account-api/internal/core/ports"
)

// DefaultInactivityTimeout is how long an activity entry survives without a
// refresh before it is considered stale.
const DefaultInactivityTimeout = 30 * time.Minute

// ActivityTrackerConfig sizes the tracker's inactivity window.
type ActivityTrackerConfig struct {
	InactivityTimeout time.Duration
}

// ActivityTracker is a concurrency-safe map from username to last-seen
// instant. Eviction is lazy: stale entries are purged only as a side effect
// of IsActive (the one inspected key) and ListActive/CountActive (full
// sweep); there is no background timer.
type ActivityTracker struct {
	repo    ports.UserRepository
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// NewActivityTracker builds a tracker resolving active usernames against
// repo. A non-positive timeout falls back to DefaultInactivityTimeout.
func NewActivityTracker(repo ports.UserRepository, cfg ActivityTrackerConfig) *ActivityTracker {
	timeout := cfg.InactivityTimeout
	if timeout <= 0 {
		timeout = DefaultInactivityTimeout
	}
	return &ActivityTracker{
		repo:     repo,
		timeout:  timeout,
		now:      time.Now,
		lastSeen: make(map[string]time.Time),
	}
}

// MarkActive upserts the current time for username. Last writer wins under
// concurrent calls.
func (t *ActivityTracker) MarkActive(username string) {
	now := t.now()
	t.mu.Lock()
	t.lastSeen[username] = now
	t.mu.Unlock()
}

// MarkInactive removes the entry for username. No-op when absent.
func (t *ActivityTracker) MarkInactive(username string) {
	t.mu.Lock()
	delete(t.lastSeen, username)
	t.mu.Unlock()
}

// IsActive reports whether username was seen within the inactivity window,
// evicting the entry when it has gone stale.
func (t *ActivityTracker) IsActive(username string) bool {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	seen, ok := t.lastSeen[username]
	if !ok {
		return false
	}
	if now.Sub(seen) > t.timeout {
		delete(t.lastSeen, username)
		return false
	}
	return true
}

// ListActive sweeps stale entries, then resolves every surviving username
// against the user store. Usernames whose record no longer exists are
// silently skipped. Order reflects map iteration and is not guaranteed.
func (t *ActivityTracker) ListActive(ctx context.Context) ([]domain.Info, error) {
	t.sweep()

	infos := make([]domain.Info, 0)
	for _, username := range t.activeUsernames() {
		if !t.IsActive(username) {
			continue
		}
		user, err := t.repo.FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		infos = append(infos, domain.InfoOf(user))
	}
	return infos, nil
}

// CountActive sweeps stale entries and returns the remaining entry count.
func (t *ActivityTracker) CountActive() int {
	t.sweep()
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lastSeen)
}

// sweep removes every entry older than the inactivity window.
func (t *ActivityTracker) sweep() {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()
	for username, seen := range t.lastSeen {
		if now.Sub(seen) > t.timeout {
			delete(t.lastSeen, username)
		}
	}
}

func (t *ActivityTracker) activeUsernames() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	names := make([]string, 0, len(t.lastSeen))
	for username := range t.lastSeen {
		names = append(names, username)
	}
	return names
}

var _ ports.ActivityTracker = (*ActivityTracker)(nil)
