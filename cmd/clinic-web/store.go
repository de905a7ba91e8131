package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-web/internal/core/ports"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/config"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/db/memory"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/db/mongo"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/db/redis"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/tokenseal"
)

// tokenStore is the configured durable token store and what it needs at
// shutdown and for readiness.
type tokenStore struct {
	store     ports.TokenStore
	readiness map[string]ports.Pinger
	close     func()
}

func openTokenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*tokenStore, error) {
	ts := &tokenStore{readiness: map[string]ports.Pinger{}, close: func() {}}

	switch cfg.Session.Store {
	case config.TokenStoreMemory:
		ts.store = memory.NewTokenStore(time.Now)

	case config.TokenStoreRedis:
		s, err := redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		ts.store = s
		ts.readiness["redis"] = s
		ts.close = func() { _ = s.Close() }

	case config.TokenStoreMongo:
		s, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "clinic-web"})
		if err != nil {
			return nil, err
		}
		ts.store = s
		ts.readiness["mongo"] = s
		ts.close = func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = s.Close(closeCtx)
		}

	default:
		return nil, fmt.Errorf("unknown token store %q", cfg.Session.Store)
	}

	if cfg.Session.SealKey != "" {
		ts.store = tokenseal.New(ts.store, cfg.Session.SealKey)
		log.Info().Msg("tokens sealed at rest")
	} else if cfg.Session.Store != config.TokenStoreMemory {
		log.Warn().Msg("TOKEN_SEAL_KEY not set, tokens stored in clear")
	}

	log.Info().Str("store", cfg.Session.Store).Msg("token store ready")
	return ts, nil
}
