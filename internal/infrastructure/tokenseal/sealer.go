// Package tokenseal encrypts tokens before they reach a durable store.
package tokenseal

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/clinicdesk/clinic-web/internal/core/ports"
)

const nonceSize = 24

// ErrUnsealable is returned for stored values that fail authentication,
// e.g. after the key was rotated or the value was tampered with.
var ErrUnsealable = errors.New("token cannot be unsealed")

// Store wraps a TokenStore and seals tokens with NaCl secretbox. Values are
// stored as base64(nonce || box).
type Store struct {
	next ports.TokenStore
	key  [32]byte
}

var _ ports.TokenStore = (*Store)(nil)

// New derives a 32-byte key from secret with SHA-256 and wraps next.
func New(next ports.TokenStore, secret string) *Store {
	return &Store{next: next, key: sha256.Sum256([]byte(secret))}
}

func (s *Store) Load(ctx context.Context, clientID string) (string, error) {
	sealed, err := s.next.Load(ctx, clientID)
	if err != nil {
		return "", err
	}
	return s.open(sealed)
}

func (s *Store) Save(ctx context.Context, clientID, token string, ttl time.Duration) error {
	sealed, err := s.seal(token)
	if err != nil {
		return err
	}
	return s.next.Save(ctx, clientID, sealed, ttl)
}

func (s *Store) Clear(ctx context.Context, clientID string) error {
	return s.next.Clear(ctx, clientID)
}

// Ping forwards to the wrapped store when it supports readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.next.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Store) seal(token string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("seal token: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *Store) open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrUnsealable
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrUnsealable
	}
	return string(plain), nil
}
