package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
	"github.com/clinicdesk/clinic-web/internal/core/ports"
	"github.com/clinicdesk/clinic-web/internal/core/present"
	"github.com/clinicdesk/clinic-web/internal/core/render"
	"github.com/clinicdesk/clinic-web/internal/core/view"
	"github.com/clinicdesk/clinic-web/internal/pkg/metrics"
)

// ErrNotAuthenticated is returned by operations that need a session.
var ErrNotAuthenticated = errors.New("not authenticated")

// Feature names an action the UI offers but the system does not implement yet.
type Feature string

const (
	FeatureViewPatient         Feature = "view_patient"
	FeatureEditPatient         Feature = "edit_patient"
	FeatureAddMedicalRecord    Feature = "add_medical_record"
	FeatureScheduleAppointment Feature = "schedule_appointment"
	FeatureEditAppointment     Feature = "edit_appointment"
	FeatureCompleteAppointment Feature = "complete_appointment"
	FeatureCancelAppointment   Feature = "cancel_appointment"
)

var comingSoon = map[Feature]string{
	FeatureViewPatient:         "Patient details view is being developed",
	FeatureEditPatient:         "Patient editing functionality is being developed",
	FeatureAddMedicalRecord:    "Medical record creation is being developed",
	FeatureScheduleAppointment: "Appointment scheduling form is being developed",
	FeatureEditAppointment:     "Appointment editing is being developed",
	FeatureCompleteAppointment: "Appointment completion is being developed",
	FeatureCancelAppointment:   "Appointment cancellation is being developed",
}

// WorkspaceDeps are the collaborators shared by every workspace.
type WorkspaceDeps struct {
	Backend  ports.Backend
	Tokens   ports.TokenStore
	Location *time.Location
	TokenTTL time.Duration
	Now      func() time.Time
	Log      zerolog.Logger
}

// Workspace is the client state of one browser: session, view router,
// feedback surfaces and the data of the visible section. Callers hold the
// workspace lock for the duration of a request; no method locks on its own.
type Workspace struct {
	mu sync.Mutex

	id        string
	backend   ports.Backend
	session   *SessionStore
	router    *view.Router
	presenter *present.Presenter
	loader    *SectionLoader
	log       zerolog.Logger

	pending view.Section
	data    SectionData
}

// NewWorkspace builds a logged-out workspace for clientID.
func NewWorkspace(clientID string, deps WorkspaceDeps) *Workspace {
	log := deps.Log.With().Str("client_id", clientID).Logger()
	return &Workspace{
		id:        clientID,
		backend:   deps.Backend,
		session:   NewSessionStore(clientID, deps.Backend, deps.Tokens, deps.TokenTTL, deps.Now, log),
		router:    view.NewRouter(),
		presenter: present.NewPresenter(deps.Now),
		loader:    NewSectionLoader(deps.Backend, deps.Location, deps.Now, log),
		log:       log,
	}
}

func (w *Workspace) Lock()   { w.mu.Lock() }
func (w *Workspace) Unlock() { w.mu.Unlock() }

// ID returns the client id the workspace belongs to.
func (w *Workspace) ID() string { return w.id }

// Section returns the visible section.
func (w *Workspace) Section() view.Section { return w.router.State().Section }

// Authenticated reports whether a verified session is active.
func (w *Workspace) Authenticated() bool { return w.session.Session().Authenticated() }

// Restore re-establishes a persisted session. Run once, when the workspace
// is created.
func (w *Workspace) Restore(ctx context.Context) {
	if !w.session.Restore(ctx) {
		w.dispatch(view.LoggedOut())
		return
	}
	w.dispatch(view.SessionEstablished())
}

// Login submits credentials. Rejections raise an error notification,
// transport failures a blocking alert.
func (w *Workspace) Login(ctx context.Context, email, password string) {
	if w.Authenticated() {
		return
	}
	user, err := w.session.Login(ctx, email, password)
	switch {
	case err == nil:
		w.notify("Welcome!", "Successfully logged in as "+user.FirstName, present.SeveritySuccess)
		w.dispatch(view.SessionEstablished())
	case errors.Is(err, domain.ErrTransport):
		w.log.Warn().Err(err).Msg("login unreachable")
		w.presenter.Alert("Login failed. Please try again.")
	default:
		w.notify("Login Failed", domain.RejectionMessage(err, "Invalid credentials"), present.SeverityError)
	}
}

// Register submits the sign-up form. Success returns to the login view.
func (w *Workspace) Register(ctx context.Context, reg domain.Registration) error {
	if w.Authenticated() {
		return fmt.Errorf("register: %w", view.ErrInvalidTransition)
	}
	err := w.session.Register(ctx, reg)
	switch {
	case err == nil:
		w.notify("Success!", "Registration successful! Please login.", present.SeveritySuccess)
		w.dispatch(view.ShowLogin())
	case errors.Is(err, domain.ErrTransport):
		w.log.Warn().Err(err).Msg("register unreachable")
		w.presenter.Alert("Registration failed. Please try again.")
	default:
		w.notify("Registration Failed", domain.RejectionMessage(err, "Registration failed"), present.SeverityError)
	}
	return nil
}

// Logout ends the session without contacting the backend.
func (w *Workspace) Logout(ctx context.Context) {
	w.session.Logout(ctx)
	w.presenter.HideModal()
	w.data = SectionData{}
	w.dispatch(view.LoggedOut())
}

// Show moves the router to sec. Authenticated sections schedule a fresh
// load. Returns view.ErrInvalidTransition when sec is not reachable.
func (w *Workspace) Show(sec view.Section) error {
	var ev view.Event
	switch sec {
	case view.SectionLogin:
		ev = view.ShowLogin()
	case view.SectionRegister:
		ev = view.ShowRegister()
	default:
		ev = view.Navigate(sec)
	}
	eff, err := w.router.Dispatch(ev)
	if err != nil {
		return err
	}
	w.schedule(eff)
	return nil
}

// ShowAddPatientForm opens the patients section with the add-patient modal.
// fields pre-fill the form; nil shows it blank.
func (w *Workspace) ShowAddPatientForm(fields map[string]string) error {
	if err := w.Show(view.SectionPatients); err != nil {
		return err
	}
	w.presenter.ShowModal(present.ModalAddPatient, fields)
	return nil
}

// HideModal hides the modal surface.
func (w *Workspace) HideModal() { w.presenter.HideModal() }

// AddPatient creates a patient. Success closes the modal and reloads the
// list; a rejection keeps the form open with what was entered.
func (w *Workspace) AddPatient(ctx context.Context, in domain.NewPatient, fields map[string]string) error {
	sess := w.session.Session()
	if !sess.Authenticated() {
		return ErrNotAuthenticated
	}

	err := w.backend.CreatePatient(ctx, sess.Token, in)
	switch {
	case err == nil:
		w.presenter.HideModal()
		w.notify("Success!", "Patient added successfully", present.SeveritySuccess)
		return w.Show(view.SectionPatients)
	case errors.Is(err, domain.ErrTransport):
		w.log.Warn().Err(err).Msg("create patient unreachable")
		w.presenter.Alert("Failed to add patient")
	default:
		w.notify("Error", domain.RejectionMessage(err, "Failed to add patient"), present.SeverityError)
	}
	w.presenter.ShowModal(present.ModalAddPatient, fields)
	return nil
}

// Warn raises a warning notification, used for form input that fails the
// field constraints before any backend call.
func (w *Workspace) Warn(title, message string) {
	w.notify(title, message, present.SeverityWarning)
}

// ComingSoon announces an unimplemented feature.
func (w *Workspace) ComingSoon(f Feature) {
	msg, ok := comingSoon[f]
	if !ok {
		msg = "This feature is being developed"
	}
	w.notify("Feature Coming Soon", msg, present.SeverityInfo)
}

// Page runs any pending section load and returns the projection to render.
// The alert is consumed.
func (w *Workspace) Page(ctx context.Context) Page {
	if w.pending != "" {
		sess := w.session.Session()
		w.data = w.loader.Load(ctx, sess.Token, w.pending)
		w.pending = ""
	}
	p := w.project()
	p.Alert, _ = w.presenter.TakeAlert()
	return p
}

// Snapshot returns the projection without loading data or consuming the alert.
func (w *Workspace) Snapshot() Page {
	return w.project()
}

func (w *Workspace) project() Page {
	state := w.router.State()
	p := Page{
		Section:       state.Section,
		Nodes:         state.Nodes(),
		Authenticated: w.Authenticated(),
		Modal:         w.presenter.Modal(),
	}
	if u := w.session.Session().User; u != nil && p.Authenticated {
		user := *u
		p.User = &user
	}
	if n, ok := w.presenter.Notification(); ok {
		p.Notification = &n
	}
	switch state.Section {
	case view.SectionDashboard:
		p.Dashboard = w.data.Dashboard
	case view.SectionPatients:
		p.Patients = w.data.Patients
	case view.SectionAppointments:
		p.Appointments = w.data.Appointments
	}
	return p
}

func (w *Workspace) dispatch(ev view.Event) {
	eff, err := w.router.Dispatch(ev)
	if err != nil {
		w.log.Error().Err(err).Stringer("event", ev.Kind).Msg("unexpected view transition")
		return
	}
	w.schedule(eff)
}

func (w *Workspace) schedule(eff view.Effect) {
	if eff.NeedsLoad() {
		w.pending = eff.Load
		return
	}
	if !w.router.State().Authenticated() {
		w.pending = ""
	}
}

func (w *Workspace) notify(title, message string, sev present.Severity) {
	w.presenter.Notify(title, message, sev)
	metrics.NotificationsTotal.WithLabelValues(string(present.ParseSeverity(string(sev)))).Inc()
}

// Page is the projection of a workspace rendered by the web layer.
type Page struct {
	Section       view.Section
	Nodes         []view.SectionNode
	Authenticated bool
	User          *domain.UserSummary
	Notification  *present.Notification
	Alert         string
	Modal         present.Modal

	Dashboard    *render.Dashboard
	Patients     *render.PatientList
	Appointments *render.AppointmentList
}
