package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
	"github.com/clinicdesk/clinic-web/internal/core/ports"
	"github.com/clinicdesk/clinic-web/internal/pkg/metrics"
)

const defaultTokenTTL = 24 * time.Hour

// SessionStore holds the token and user of one browser and mirrors the token
// into durable storage. Durable storage is written only on login and cleared
// only on logout or a failed restore.
type SessionStore struct {
	clientID    string
	backend     ports.Backend
	tokens      ports.TokenStore
	fallbackTTL time.Duration
	now         func() time.Time
	log         zerolog.Logger

	session domain.Session
}

// NewSessionStore returns an empty store for clientID.
func NewSessionStore(
	clientID string,
	backend ports.Backend,
	tokens ports.TokenStore,
	fallbackTTL time.Duration,
	now func() time.Time,
	log zerolog.Logger,
) *SessionStore {
	if fallbackTTL <= 0 {
		fallbackTTL = defaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		clientID:    clientID,
		backend:     backend,
		tokens:      tokens,
		fallbackTTL: fallbackTTL,
		now:         now,
		log:         log,
	}
}

// Session returns the current in-memory session.
func (s *SessionStore) Session() domain.Session {
	return s.session
}

// Restore reloads a persisted token and verifies it against the backend.
// It reports whether a session was established. Any verification failure
// clears the persisted token.
func (s *SessionStore) Restore(ctx context.Context) bool {
	token, err := s.tokens.Load(ctx, s.clientID)
	if err != nil {
		if !errors.Is(err, domain.ErrTokenNotFound) {
			metrics.TokenStoreErrorsTotal.WithLabelValues("load").Inc()
			s.log.Warn().Err(err).Str("client_id", s.clientID).Msg("token load failed")
			s.clear(ctx)
		}
		metrics.SessionEventsTotal.WithLabelValues("restore", "none").Inc()
		return false
	}

	s.session = domain.Session{Token: token}
	user, err := s.backend.Me(ctx, token)
	if err != nil {
		s.log.Info().Err(err).Str("client_id", s.clientID).Msg("stored token rejected")
		metrics.SessionEventsTotal.WithLabelValues("restore", resultLabel(err)).Inc()
		s.session = domain.Session{}
		s.clear(ctx)
		return false
	}

	s.session.User = user
	metrics.SessionEventsTotal.WithLabelValues("restore", "ok").Inc()
	return true
}

// Login authenticates with the backend and persists the returned token.
// Backend errors are returned unchanged and leave the session untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) (*domain.UserSummary, error) {
	res, err := s.backend.Login(ctx, email, password)
	if err != nil {
		metrics.SessionEventsTotal.WithLabelValues("login", resultLabel(err)).Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	user := res.User
	s.session = domain.Session{Token: res.Token, User: &user}
	metrics.SessionEventsTotal.WithLabelValues("login", "ok").Inc()

	ttl := s.tokenTTL(res.Token)
	if ttl <= 0 {
		s.log.Warn().Str("client_id", s.clientID).Msg("token already expired, not persisted")
		return &user, nil
	}
	if err := s.tokens.Save(ctx, s.clientID, res.Token, ttl); err != nil {
		metrics.TokenStoreErrorsTotal.WithLabelValues("save").Inc()
		s.log.Error().Err(err).Str("client_id", s.clientID).Msg("token save failed")
	}
	return &user, nil
}

// Register creates an account. It never establishes a session.
func (s *SessionStore) Register(ctx context.Context, reg domain.Registration) error {
	if err := s.backend.Register(ctx, reg); err != nil {
		metrics.SessionEventsTotal.WithLabelValues("register", resultLabel(err)).Inc()
		return fmt.Errorf("register: %w", err)
	}
	metrics.SessionEventsTotal.WithLabelValues("register", "ok").Inc()
	return nil
}

// Logout forgets the session in memory and in durable storage. The backend
// is not contacted.
func (s *SessionStore) Logout(ctx context.Context) {
	s.session = domain.Session{}
	s.clear(ctx)
	metrics.SessionEventsTotal.WithLabelValues("logout", "ok").Inc()
}

func (s *SessionStore) clear(ctx context.Context) {
	if err := s.tokens.Clear(ctx, s.clientID); err != nil {
		metrics.TokenStoreErrorsTotal.WithLabelValues("clear").Inc()
		s.log.Error().Err(err).Str("client_id", s.clientID).Msg("token clear failed")
	}
}

// tokenTTL reads the exp claim without verifying the signature; the backend
// stays the authority on validity. Opaque tokens get the fallback TTL.
func (s *SessionStore) tokenTTL(token string) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s.fallbackTTL
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.fallbackTTL
	}
	return exp.Sub(s.now())
}

func resultLabel(err error) string {
	if errors.Is(err, domain.ErrTransport) {
		return "transport"
	}
	return "rejected"
}
