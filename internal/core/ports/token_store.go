package ports

import (
	"context"
	"time"
)

// TokenStore is the durable storage capability behind the session: one
// bearer token per client id. Load returns domain.ErrTokenNotFound when
// nothing is stored or the entry has expired.
type TokenStore interface {
	Load(ctx context.Context, clientID string) (string, error)
	Save(ctx context.Context, clientID, token string, ttl time.Duration) error
	Clear(ctx context.Context, clientID string) error
}

// Pinger is implemented by token stores backed by a network service.
type Pinger interface {
	Ping(ctx context.Context) error
}
