package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinic-web/internal/api/web"
	"github.com/clinicdesk/clinic-web/internal/core/service"
	"github.com/clinicdesk/clinic-web/internal/core/view"
)

// SectionHandler serves the authenticated sections and the patient form.
type SectionHandler struct {
	now func() time.Time
}

func NewSectionHandler(now func() time.Time) *SectionHandler {
	if now == nil {
		now = time.Now
	}
	return &SectionHandler{now: now}
}

// Root redirects to the section the client is on.
func (h *SectionHandler) Root(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	return toSection(c, ws)
}

func (h *SectionHandler) Dashboard(c echo.Context) error {
	return showSection(c, view.SectionDashboard, h.now)
}

func (h *SectionHandler) Patients(c echo.Context) error {
	return showSection(c, view.SectionPatients, h.now)
}

func (h *SectionHandler) Appointments(c echo.Context) error {
	return showSection(c, view.SectionAppointments, h.now)
}

// NewPatient shows the patients section with a blank add-patient form.
func (h *SectionHandler) NewPatient(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.ShowAddPatientForm(nil); err != nil {
		if errors.Is(err, view.ErrInvalidTransition) {
			return toSection(c, ws)
		}
		return err
	}
	return renderPage(c, ws, h.now)
}

// CreatePatient submits the add-patient form. Input failing the field
// constraints never reaches the backend; the form is shown again as entered.
func (h *SectionHandler) CreatePatient(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}

	var form patientForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.Email = strings.TrimSpace(form.Email)
	if err := c.Validate(&form); err != nil {
		ws.Warn("Invalid Patient", err.Error())
		if err := ws.ShowAddPatientForm(form.fields()); err != nil && !errors.Is(err, view.ErrInvalidTransition) {
			return err
		}
		return toSection(c, ws)
	}

	if err := ws.AddPatient(c.Request().Context(), form.newPatient(), form.fields()); err != nil {
		return err
	}
	return toSection(c, ws)
}

// HideModal closes the modal surface.
func (h *SectionHandler) HideModal(c echo.Context) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	ws.HideModal()
	return toSection(c, ws)
}

// showSection moves the workspace to sec and renders it. Unreachable
// sections redirect to the current one.
func showSection(c echo.Context, sec view.Section, now func() time.Time) error {
	ws, err := ctxWorkspace(c)
	if err != nil {
		return err
	}
	if err := ws.Show(sec); err != nil {
		if errors.Is(err, view.ErrInvalidTransition) {
			return toSection(c, ws)
		}
		return err
	}
	return renderPage(c, ws, now)
}

func renderPage(c echo.Context, ws *service.Workspace, now func() time.Time) error {
	return c.Render(http.StatusOK, "page", web.NewPageData(ws.Page(c.Request().Context()), now()))
}
