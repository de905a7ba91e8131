package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/clinicdesk/clinic-web/internal/api"
	"github.com/clinicdesk/clinic-web/internal/api/middleware"
	"github.com/clinicdesk/clinic-web/internal/core/service"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/backend"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/config"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/tracing"
	"github.com/clinicdesk/clinic-web/pkg/logger"
)

const serviceName = "clinic-web"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: serviceName,
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("display timezone")
	}

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.OTel.Enabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.OTel.Endpoint,
		SampleRatio:  cfg.OTel.SampleRatio,
	})
	if err != nil {
		log.Error().Err(err).Msg("tracing setup failed")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	tokens, err := openTokenStore(ctx, cfg, logger.Component("token_store"))
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Session.Store).Msg("open token store")
	}
	defer tokens.close()

	deps := service.WorkspaceDeps{
		Backend:  backend.New(cfg.BackendURL, backend.WithLocation(loc)),
		Tokens:   tokens.store,
		Location: loc,
		TokenTTL: cfg.Session.TokenTTL,
		Log:      logger.Component("workspace"),
	}
	registry := service.NewRegistry(func(clientID string) *service.Workspace {
		return service.NewWorkspace(clientID, deps)
	}, cfg.Session.IdleTTL, nil, logger.Component("registry"))
	go registry.Run(ctx, 0)

	limiter := middleware.NewRateLimiter(cfg.Limits.AuthRate, cfg.Limits.AuthBurst)
	go limiter.Run(ctx)

	e, err := api.NewRouter(api.Deps{
		Workspaces: registry,
		Cookie: middleware.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
		},
		AuthLimiter: limiter,
		Readiness:   tokens.readiness,
		Log:         log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("build router")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(e, serviceName),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.BackendURL).Str("token_store", cfg.Session.Store).Msg("http server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown")
	}
}
