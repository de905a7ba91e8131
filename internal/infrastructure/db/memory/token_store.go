// Package memory provides a process-local token store. Tokens do not survive
// a restart; use it for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

type item struct {
	token     string
	expiresAt time.Time
}

// TokenStore keeps tokens in a map guarded by a mutex.
type TokenStore struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

// NewTokenStore returns an empty store; nil now means time.Now.
func NewTokenStore(now func() time.Time) *TokenStore {
	if now == nil {
		now = time.Now
	}
	return &TokenStore{items: make(map[string]item), now: now}
}

func (s *TokenStore) Load(_ context.Context, clientID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[clientID]
	if !ok {
		return "", domain.ErrTokenNotFound
	}
	if !s.now().Before(it.expiresAt) {
		delete(s.items, clientID)
		return "", domain.ErrTokenNotFound
	}
	return it.token, nil
}

func (s *TokenStore) Save(_ context.Context, clientID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[clientID] = item{token: token, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *TokenStore) Clear(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, clientID)
	return nil
}
