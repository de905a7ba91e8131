package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
	"github.com/clinicdesk/clinic-web/internal/core/present"
	"github.com/clinicdesk/clinic-web/internal/core/service"
)

// StateHandler exposes the workspace projection as JSON.
type StateHandler struct {
	now func() time.Time
}

func NewStateHandler(now func() time.Time) *StateHandler {
	if now == nil {
		now = time.Now
	}
	return &StateHandler{now: now}
}

type nodeResponse struct {
	Section string `json:"section"`
	Visible bool   `json:"visible"`
}

type notificationResponse struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	Severity    string `json:"severity"`
	RemainingMs int64  `json:"remainingMs"`
}

type stateResponse struct {
	Section       string                `json:"section"`
	Authenticated bool                  `json:"authenticated"`
	User          *domain.UserSummary   `json:"user,omitempty"`
	Nodes         []nodeResponse        `json:"nodes"`
	Notification  *notificationResponse `json:"notification,omitempty"`
	Modal         present.Modal         `json:"modal"`
}

func toStateResponse(p service.Page, now time.Time) stateResponse {
	resp := stateResponse{
		Section:       string(p.Section),
		Authenticated: p.Authenticated,
		User:          p.User,
		Nodes:         make([]nodeResponse, len(p.Nodes)),
		Modal:         p.Modal,
	}
	for i, n := range p.Nodes {
		resp.Nodes[i] = nodeResponse{Section: string(n.Section), Visible: n.Visible}
	}
	if n := p.Notification; n != nil {
		resp.Notification = &notificationResponse{
			Title:       n.Title,
			Message:     n.Message,
			Severity:    string(n.Severity),
			RemainingMs: n.Remaining(now).Milliseconds(),
		}
	}
	return resp
}

// State returns the current view state without loading section data.
//
// @Summary      Current UI state
// @Description  Visible section, session user, notification and modal of the calling client.
// @Tags         ui
// @Produce      json
// @Success      200  {object}  stateResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/ui/state [get]
func (h *StateHandler) State(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStateResponse(ws.Snapshot(), h.now()))
}
