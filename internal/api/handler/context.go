package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-web/internal/core/service"
)

// ctxWorkspace returns the workspace the Workspace middleware attached to the
// request. Its lock is already held.
func ctxWorkspace(c echo.Context) (*service.Workspace, error) {
	ws, _ := c.Get("workspace").(*service.Workspace)
	if ws == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "missing client workspace")
	}
	return ws, nil
}

// toSection answers a mutation with a redirect to whatever section the
// workspace now shows.
func toSection(c echo.Context, ws *service.Workspace) error {
	return c.Redirect(http.StatusSeeOther, ws.Section().Path())
}
