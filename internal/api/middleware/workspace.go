package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-web/internal/core/service"
)

// clientCookieMaxAge keeps the client id as long as a stored token may live.
const clientCookieMaxAge = 365 * 24 * time.Hour

// WorkspaceSource hands out the workspace of a client id.
type WorkspaceSource interface {
	Acquire(ctx context.Context, clientID string) *service.Workspace
}

// CookieConfig describes the client-id cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Workspace identifies the browser by its client-id cookie, issuing a new
// id when the cookie is missing or malformed, and attaches its workspace to
// the request. The workspace lock is held until the handler returns.
func Workspace(src WorkspaceSource, cfg CookieConfig) echo.MiddlewareFunc {
	if cfg.Name == "" {
		cfg.Name = "clinic_client"
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := ""
			if ck, err := c.Cookie(cfg.Name); err == nil {
				if id, err := uuid.Parse(ck.Value); err == nil {
					clientID = id.String()
				}
			}
			if clientID == "" {
				clientID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     cfg.Name,
					Value:    clientID,
					Path:     "/",
					MaxAge:   int(clientCookieMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ws := src.Acquire(c.Request().Context(), clientID)
			ws.Lock()
			defer ws.Unlock()

			c.Set("workspace", ws)
			return next(c)
		}
	}
}

// RequireSession sends clients without a verified session to the login view.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ws, _ := c.Get("workspace").(*service.Workspace)
			if ws == nil || !ws.Authenticated() {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
