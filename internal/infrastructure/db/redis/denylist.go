package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenyList records logged-out token ids until the tokens would have
// expired on their own.
// Key format: denylist:<jti>
type TokenDenyList struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenDenyList creates a TokenDenyList wrapping the given Redis client.
func NewTokenDenyList(client *redis.Client) *TokenDenyList {
	return &TokenDenyList{client: client, now: time.Now}
}

// Revoke lists tokenID until the given instant. Tokens that are already
// expired are not stored.
func (d *TokenDenyList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := remaining(d.now(), until)
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (d *TokenDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func key(tokenID string) string {
	return "denylist:" + tokenID
}

// remaining is the TTL for a key expiring at until, rounded up to whole
// seconds. Zero means the token is already expired.
func remaining(now, until time.Time) time.Duration {
	d := until.Sub(now)
	if d <= 0 {
		return 0
	}
	return d.Truncate(time.Second) + time.Second
}
