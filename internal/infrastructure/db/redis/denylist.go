package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/base-platform/account-api/internal/core/ports"
)

// Denylist is a best-effort token revocation list backed by Redis.
// Key format: revoked:<sha256(token)>. Entries carry a TTL equal to the
// token's remaining lifetime, so the set expires itself.
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke records the token as logged out until ttl elapses.
func (d *Denylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist set: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was revoked by a logout.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}

var _ ports.TokenDenylist = (*Denylist)(nil)
