package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config selects the Redis server holding the tokens.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds dialling and every command. Zero means dialTimeout.
	Timeout time.Duration
}

// Open dials Redis, checks it answers and returns a token store on top of it.
// Close the store to release the connection pool.
func Open(ctx context.Context, cfg Config) (*TokenStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	return NewTokenStore(client), nil
}

// Close releases the underlying client.
func (s *TokenStore) Close() error {
	return s.client.Close()
}
