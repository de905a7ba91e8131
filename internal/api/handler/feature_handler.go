package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-web/internal/core/service"
)

// ComingSoon answers an action the UI offers but the system does not
// implement with an info notification.
func ComingSoon(f service.Feature) echo.HandlerFunc {
	return func(c echo.Context) error {
		ws, err := ctxWorkspace(c)
		if err != nil {
			return err
		}
		ws.ComingSoon(f)
		return toSection(c, ws)
	}
}
