package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

const keyPrefix = "clinicweb:token:"

// TokenStore persists one bearer token per client id in Redis.
// Key format: clinicweb:token:<client_id>; entries expire with the token.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) Load(ctx context.Context, clientID string) (string, error) {
	token, err := s.client.Get(ctx, key(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("token load: %w", err)
	}
	return token, nil
}

func (s *TokenStore) Save(ctx context.Context, clientID, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(clientID), token, ttl).Err(); err != nil {
		return fmt.Errorf("token save: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, key(clientID)).Err(); err != nil {
		return fmt.Errorf("token clear: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (s *TokenStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func key(clientID string) string {
	return keyPrefix + clientID
}
