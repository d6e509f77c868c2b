package ports

import (
	"context"
	"time"
)

// TokenDenylist is a best-effort revocation list for logged-out tokens.
// Entries expire on their own once the underlying token would have expired,
// so the list never outgrows the set of tokens still worth rejecting.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
