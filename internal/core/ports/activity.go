package ports

import (
	"context"

	"github.com/base-platform/account-api/internal/core/domain"
)

// ActivityTracker records which usernames have made an authenticated request
// recently. Implementations must be safe for concurrent use; eviction of
// stale entries is lazy, performed as a side effect of the read operations.
type ActivityTracker interface {
	MarkActive(username string)
	MarkInactive(username string)
	// IsActive evicts the inspected entry when stale and reports freshness.
	IsActive(username string) bool
	// ListActive sweeps all stale entries, then resolves the survivors
	// against the user store, silently skipping deleted accounts.
	ListActive(ctx context.Context) ([]domain.Info, error)
	// CountActive sweeps all stale entries and returns the remaining count.
	CountActive() int
}
