package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-web/internal/api/web"
	"github.com/clinicdesk/clinic-web/internal/core/domain"
	"github.com/clinicdesk/clinic-web/internal/core/ports"
	"github.com/clinicdesk/clinic-web/internal/core/service"
	"github.com/clinicdesk/clinic-web/internal/core/view"
	"github.com/clinicdesk/clinic-web/internal/infrastructure/db/memory"
)

type stubBackend struct {
	loginFn            func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	registerFn         func(ctx context.Context, reg domain.Registration) error
	meFn               func(ctx context.Context, token string) (*domain.UserSummary, error)
	listPatientsFn     func(ctx context.Context, token string) ([]domain.Patient, error)
	createPatientFn    func(ctx context.Context, token string, in domain.NewPatient) error
	listAppointmentsFn func(ctx context.Context, token string) ([]domain.Appointment, error)
}

func (s *stubBackend) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubBackend) Register(ctx context.Context, reg domain.Registration) error {
	return s.registerFn(ctx, reg)
}

func (s *stubBackend) Me(ctx context.Context, token string) (*domain.UserSummary, error) {
	return s.meFn(ctx, token)
}

func (s *stubBackend) ListPatients(ctx context.Context, token string) ([]domain.Patient, error) {
	return s.listPatientsFn(ctx, token)
}

func (s *stubBackend) CreatePatient(ctx context.Context, token string, in domain.NewPatient) error {
	return s.createPatientFn(ctx, token, in)
}

func (s *stubBackend) ListAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	return s.listAppointmentsFn(ctx, token)
}

var (
	fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	alice    = domain.UserSummary{ID: "u1", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Role: "doctor"}
)

func clock() time.Time { return fixedNow }

// newBackend answers every call successfully with one patient and no
// appointments.
func newBackend() *stubBackend {
	return &stubBackend{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Token: "tok", User: alice}, nil
		},
		registerFn: func(ctx context.Context, reg domain.Registration) error { return nil },
		meFn: func(ctx context.Context, token string) (*domain.UserSummary, error) {
			u := alice
			return &u, nil
		},
		listPatientsFn: func(ctx context.Context, token string) ([]domain.Patient, error) {
			return []domain.Patient{{ID: "p1", FirstName: "Ada", LastName: "Lovelace", DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), Gender: "Female"}}, nil
		},
		createPatientFn: func(ctx context.Context, token string, in domain.NewPatient) error { return nil },
		listAppointmentsFn: func(ctx context.Context, token string) ([]domain.Appointment, error) {
			return []domain.Appointment{}, nil
		},
	}
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	return e
}

func newWorkspace(backend ports.Backend) *service.Workspace {
	ws := service.NewWorkspace("client-1", service.WorkspaceDeps{
		Backend:  backend,
		Tokens:   memory.NewTokenStore(clock),
		Location: time.UTC,
		TokenTTL: time.Hour,
		Now:      clock,
		Log:      zerolog.Nop(),
	})
	ws.Restore(context.Background())
	return ws
}

func loggedIn(t *testing.T, backend ports.Backend) *service.Workspace {
	t.Helper()
	ws := newWorkspace(backend)
	ws.Login(context.Background(), "alice@example.com", "secret")
	if !ws.Authenticated() {
		t.Fatalf("login did not establish a session")
	}
	return ws
}

func request(e *echo.Echo, ws *service.Workspace, method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("workspace", ws)
	return c, rec
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func TestCtxWorkspace_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := ctxWorkspace(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 http error, got %v", err)
	}
}

func TestAuthHandler_LoginPage_RendersLoginSection(t *testing.T) {
	e := newEcho(t)
	ws := newWorkspace(newBackend())
	c, rec := request(e, ws, http.MethodGet, "/login", nil)

	if err := NewAuthHandler(clock).LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="login-form"`) {
		t.Fatalf("login form missing")
	}
	if strings.Contains(body, `id="nav-menu"`) {
		t.Fatalf("nav menu must be hidden while logged out")
	}
}

func TestAuthHandler_LoginPage_AuthenticatedRedirects(t *testing.T) {
	e := newEcho(t)
	ws := loggedIn(t, newBackend())
	c, rec := request(e, ws, http.MethodGet, "/login", nil)

	if err := NewAuthHandler(clock).LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/dashboard")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho(t)
	backend := newBackend()
	backend.loginFn = func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
		if email != "alice@example.com" || password != "secret" {
			t.Fatalf("unexpected credentials: %s %s", email, password)
		}
		return &ports.LoginResult{Token: "tok", User: alice}, nil
	}
	ws := newWorkspace(backend)
	c, rec := request(e, ws, http.MethodPost, "/login", url.Values{
		"email":    {" alice@example.com "},
		"password": {"secret"},
	})

	if err := NewAuthHandler(clock).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/dashboard")
	if !ws.Authenticated() {
		t.Fatalf("expected session")
	}
}

func TestAuthHandler_Login_InvalidFormSkipsBackend(t *testing.T) {
	e := newEcho(t)
	backend := newBackend()
	backend.loginFn = func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
		t.Fatalf("backend must not be called")
		return nil, nil
	}
	ws := newWorkspace(backend)
	c, rec := request(e, ws, http.MethodPost, "/login", url.Values{"email": {"not-an-email"}})

	if err := NewAuthHandler(clock).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")

	n := ws.Snapshot().Notification
	if n == nil || n.Severity != "warning" {
		t.Fatalf("expected warning notification, got %+v", n)
	}
	if !strings.Contains(n.Message, "email must be a valid email") || !strings.Contains(n.Message, "password is required") {
		t.Fatalf("unexpected message %q", n.Message)
	}
}

func TestAuthHandler_Login_RejectedStaysOnLogin(t *testing.T) {
	e := newEcho(t)
	backend := newBackend()
	backend.loginFn = func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
		return nil, &domain.RejectedError{Status: http.StatusUnauthorized, Message: "Invalid email or password"}
	}
	ws := newWorkspace(backend)
	c, rec := request(e, ws, http.MethodPost, "/login", url.Values{"email": {"a@b.io"}, "password": {"x"}})

	if err := NewAuthHandler(clock).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")
	if n := ws.Snapshot().Notification; n == nil || n.Message != "Invalid email or password" {
		t.Fatalf("expected backend message, got %+v", n)
	}
}

func TestAuthHandler_Login_TransportShowsAlertOnce(t *testing.T) {
	e := newEcho(t)
	backend := newBackend()
	backend.loginFn = func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
		return nil, &domain.TransportError{Op: "POST /api/auth/login", Err: errors.New("connection refused")}
	}
	ws := newWorkspace(backend)
	c, _ := request(e, ws, http.MethodPost, "/login", url.Values{"email": {"a@b.io"}, "password": {"x"}})
	if err := NewAuthHandler(clock).Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c, rec := request(e, ws, http.MethodGet, "/login", nil)
	if err := NewAuthHandler(clock).LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "alert(") {
		t.Fatalf("expected alert script")
	}

	c, rec = request(e, ws, http.MethodGet, "/login", nil)
	if err := NewAuthHandler(clock).LoginPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.Contains(rec.Body.String(), "alert(") {
		t.Fatalf("alert must be shown once")
	}
}

func TestAuthHandler_Register_DropsSpecializationForNonDoctors(t *testing.T) {
	e := newEcho(t)
	backend := newBackend()
	var got domain.Registration
	backend.registerFn = func(ctx context.Context, reg domain.Registration) error {
		got = reg
		return nil
	}
	ws := newWorkspace(backend)
	c, _ := request(e, ws, http.MethodGet, "/register", nil)
	if err := NewAuthHandler(clock).RegisterPage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c, rec := request(e, ws, http.MethodPost, "/register", url.Values{
		"firstName":      {"Nina"},
		"lastName":       {"Jones"},
		"username":       {"nina"},
		"email":          {"nina@example.com"},
		"password":       {"pw"},
		"role":           {"nurse"},
		"specialization": {"Cardiology"},
	})
	if err := NewAuthHandler(clock).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")
	if got.Username != "nina" || got.Role != "nurse" {
		t.Fatalf("unexpected registration: %+v", got)
	}
	if got.EffectiveSpecialization() != "" {
		t.Fatalf("nurse must not carry a specialization")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newEcho(t)
	ws := loggedIn(t, newBackend())
	c, rec := request(e, ws, http.MethodPost, "/logout", url.Values{})

	if err := NewAuthHandler(clock).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")
	if ws.Authenticated() {
		t.Fatalf("session should be gone")
	}
}

func TestSectionHandler_Root(t *testing.T) {
	e := newEcho(t)
	h := NewSectionHandler(clock)

	c, rec := request(e, newWorkspace(newBackend()), http.MethodGet, "/", nil)
	if err := h.Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")

	c, rec = request(e, loggedIn(t, newBackend()), http.MethodGet, "/", nil)
	if err := h.Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/dashboard")
}

func TestSectionHandler_LoggedOutRedirectsToLogin(t *testing.T) {
	e := newEcho(t)
	ws := newWorkspace(newBackend())
	c, rec := request(e, ws, http.MethodGet, "/patients", nil)

	if err := NewSectionHandler(clock).Patients(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/login")
}

func TestSectionHandler_PatientsRendersRows(t *testing.T) {
	e := newEcho(t)
	ws := loggedIn(t, newBackend())
	c, rec := request(e, ws, http.MethodGet, "/patients", nil)

	if err := NewSectionHandler(clock).Patients(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ada Lovelace") || !strings.Contains(body, "34 years") {
		t.Fatalf("patient row missing from page")
	}
	if ws.Section() != view.SectionPatients {
		t.Fatalf("expected patients section, got %s", ws.Section())
	}
}

func TestSectionHandler_AppointmentsEmptyState(t *testing.T) {
	e := newEcho(t)
	ws := loggedIn(t, newBackend())
	c, rec := request(e, ws, http.MethodGet, "/appointments", nil)

	if err := NewSectionHandler(clock).Appointments(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "No appointments scheduled") {
		t.Fatalf("expected empty state")
	}
}

func TestSectionHandler_CreatePatient_InvalidKeepsForm(t *testing.T) {
	e := newEcho(t)
	backend := newBackend()
	backend.createPatientFn = func(ctx context.Context, token string, in domain.NewPatient) error {
		t.Fatalf("backend must not be called")
		return nil
	}
	ws := loggedIn(t, backend)
	c, rec := request(e, ws, http.MethodPost, "/patients", url.Values{
		"firstName":   {"Grace"},
		"lastName":    {"Hopper"},
		"dateOfBirth": {"12/09/1906"},
		"gender":      {"Female"},
	})

	if err := NewSectionHandler(clock).CreatePatient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/patients")

	p := ws.Snapshot()
	if !p.Modal.Visible || p.Modal.Fields["firstName"] != "Grace" {
		t.Fatalf("form should stay open with its input, got %+v", p.Modal)
	}
	if p.Notification == nil || !strings.Contains(p.Notification.Message, "date of birth must be a valid date") {
		t.Fatalf("unexpected notification %+v", p.Notification)
	}
}

func TestSectionHandler_CreatePatient_Success(t *testing.T) {
	e := newEcho(t)
	backend := newBackend()
	var got domain.NewPatient
	backend.createPatientFn = func(ctx context.Context, token string, in domain.NewPatient) error {
		if token != "tok" {
			t.Fatalf("unexpected token %q", token)
		}
		got = in
		return nil
	}
	ws := loggedIn(t, backend)
	c, rec := request(e, ws, http.MethodPost, "/patients", url.Values{
		"firstName":   {"Grace"},
		"lastName":    {"Hopper"},
		"dateOfBirth": {"1906-12-09"},
		"gender":      {"Female"},
		"email":       {""},
	})

	if err := NewSectionHandler(clock).CreatePatient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/patients")
	if got.FirstName != "Grace" || got.DateOfBirth != "1906-12-09" {
		t.Fatalf("unexpected patient: %+v", got)
	}
	p := ws.Snapshot()
	if p.Modal.Visible {
		t.Fatalf("modal should be hidden after success")
	}
	if p.Notification == nil || p.Notification.Message != "Patient added successfully" {
		t.Fatalf("unexpected notification %+v", p.Notification)
	}
}

func TestSectionHandler_NewPatientAndHideModal(t *testing.T) {
	e := newEcho(t)
	ws := loggedIn(t, newBackend())
	h := NewSectionHandler(clock)

	c, rec := request(e, ws, http.MethodGet, "/patients/new", nil)
	if err := h.NewPatient(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `id="add-patient-form"`) {
		t.Fatalf("add-patient form missing")
	}

	c, rec = request(e, ws, http.MethodPost, "/modal/hide", url.Values{})
	if err := h.HideModal(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/patients")
	if ws.Snapshot().Modal.Visible {
		t.Fatalf("modal should be hidden")
	}
}

func TestComingSoon(t *testing.T) {
	e := newEcho(t)
	ws := loggedIn(t, newBackend())
	c, rec := request(e, ws, http.MethodPost, "/appointments/a1/cancel", url.Values{})

	if err := ComingSoon(service.FeatureCancelAppointment)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectRedirect(t, rec, "/dashboard")
	n := ws.Snapshot().Notification
	if n == nil || n.Title != "Feature Coming Soon" || n.Message != "Appointment cancellation is being developed" {
		t.Fatalf("unexpected notification %+v", n)
	}
}

func TestStateHandler(t *testing.T) {
	e := newEcho(t)
	ws := loggedIn(t, newBackend())
	c, rec := request(e, ws, http.MethodGet, "/api/ui/state", nil)

	if err := NewStateHandler(clock).State(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Section != "dashboard" || !resp.Authenticated {
		t.Fatalf("unexpected state: %+v", resp)
	}
	if resp.User == nil || resp.User.FirstName != "Alice" {
		t.Fatalf("expected user in state")
	}
	visible := 0
	for _, n := range resp.Nodes {
		if n.Visible {
			visible++
		}
	}
	if visible != 1 {
		t.Fatalf("expected one visible node, got %d", visible)
	}
	if resp.Notification == nil || resp.Notification.RemainingMs != 5000 {
		t.Fatalf("expected fresh welcome notification, got %+v", resp.Notification)
	}
}

func TestFieldErrorLabels(t *testing.T) {
	err := NewValidator().Validate(&patientForm{FirstName: "A", LastName: "B", DateOfBirth: "2000-01-01", Gender: "Unknown"})
	if err == nil || err.Error() != "gender must be one of: Male, Female, Other" {
		t.Fatalf("unexpected error: %v", err)
	}
}
