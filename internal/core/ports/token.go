package ports

import (
	"context"
	"time"
)

// TokenRevoker is the optional deny-list consulted for logged-out tokens.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
