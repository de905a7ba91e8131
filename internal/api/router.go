package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/clinicdesk/clinic-web/docs"
	"github.com/clinicdesk/clinic-web/internal/api/handler"
	"github.com/clinicdesk/clinic-web/internal/api/middleware"
	"github.com/clinicdesk/clinic-web/internal/api/web"
	"github.com/clinicdesk/clinic-web/internal/core/ports"
	"github.com/clinicdesk/clinic-web/internal/core/service"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/http/handlers"
)

// Deps are the collaborators the router wires into handlers and middleware.
type Deps struct {
	Workspaces middleware.WorkspaceSource
	Cookie     middleware.CookieConfig
	// AuthLimiter throttles login and register posts; nil disables it.
	AuthLimiter *middleware.RateLimiter
	// Readiness lists the dependencies /health/ready pings, by name.
	Readiness map[string]ports.Pinger
	Log       zerolog.Logger
	Now       func() time.Time
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	if d.Now == nil {
		d.Now = time.Now
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.Metrics())

	// --- Health probes and operational endpoints (no workspace) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the token store up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Client routes ---
	authHandler := handler.NewAuthHandler(d.Now)
	sectionHandler := handler.NewSectionHandler(d.Now)
	stateHandler := handler.NewStateHandler(d.Now)

	ui := e.Group("", middleware.Workspace(d.Workspaces, d.Cookie))

	limited := []echo.MiddlewareFunc{}
	if d.AuthLimiter != nil {
		limited = append(limited, middleware.RateLimit(d.AuthLimiter))
	}

	ui.GET("/", sectionHandler.Root)
	ui.GET("/login", authHandler.LoginPage)
	ui.POST("/login", authHandler.Login, limited...)
	ui.GET("/register", authHandler.RegisterPage)
	ui.POST("/register", authHandler.Register, limited...)
	ui.POST("/logout", authHandler.Logout)
	ui.GET("/api/ui/state", stateHandler.State)

	app := ui.Group("", middleware.RequireSession())
	app.GET("/dashboard", sectionHandler.Dashboard)
	app.GET("/patients", sectionHandler.Patients)
	app.GET("/patients/new", sectionHandler.NewPatient)
	app.POST("/patients", sectionHandler.CreatePatient)
	app.POST("/modal/hide", sectionHandler.HideModal)
	app.GET("/appointments", sectionHandler.Appointments)

	// --- Not yet implemented actions ---
	app.POST("/patients/:id/view", handler.ComingSoon(service.FeatureViewPatient))
	app.POST("/patients/:id/edit", handler.ComingSoon(service.FeatureEditPatient))
	app.POST("/patients/:id/records", handler.ComingSoon(service.FeatureAddMedicalRecord))
	app.POST("/appointments/new", handler.ComingSoon(service.FeatureScheduleAppointment))
	app.POST("/appointments/:id/edit", handler.ComingSoon(service.FeatureEditAppointment))
	app.POST("/appointments/:id/complete", handler.ComingSoon(service.FeatureCompleteAppointment))
	app.POST("/appointments/:id/cancel", handler.ComingSoon(service.FeatureCancelAppointment))

	return e, nil
}

// requestLogger feeds echo's request log into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
