package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-web/internal/core/view"
)

// AuthHandler serves the login and register views and their form posts.
type AuthHandler struct {
	now func() time.Time
}

func NewAuthHandler(now func() time.Time) *AuthHandler {
	if now == nil {
		now = time.Now
	}
	return &AuthHandler{now: now}
}

// LoginPage shows the login view. Authenticated clients are sent back to
// their current section.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return showSection(c, view.SectionLogin, h.now)
}

// RegisterPage shows the register view.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return showSection(c, view.SectionRegister, h.now)
}

// Login submits the login form.
func (h *AuthHandler) Login(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	if ws.Authenticated() {
		return toSection(c, ws)
	}

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Email = strings.TrimSpace(form.Email)
	if err := c.Validate(&form); err != nil {
		ws.Warn("Login Failed", err.Error())
		return toSection(c, ws)
	}

	ws.Login(c.Request().Context(), form.Email, form.Password)
	return toSection(c, ws)
}

// Register submits the sign-up form. On success the login view is shown.
func (h *AuthHandler) Register(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Email = strings.TrimSpace(form.Email)
	if ws.Authenticated() {
		return toSection(c, ws)
	}
	if err := c.Validate(&form); err != nil {
		ws.Warn("Registration Failed", err.Error())
		return toSection(c, ws)
	}

	if err := ws.Register(c.Request().Context(), form.registration()); err != nil && !errors.Is(err, view.ErrInvalidTransition) {
		return err
	}
	return toSection(c, ws)
}

// Logout ends the session and shows the login view.
func (h *AuthHandler) Logout(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	ws.Logout(c.Request().Context())
	return toSection(c, ws)
}
