package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
	"github.com/clinicdesk/clinic-web/internal/core/ports"
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

// failingStore refuses every operation.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Load(context.Context, string) (string, error) { return "", errStoreDown }

func (failingStore) Save(context.Context, string, string, time.Duration) error { return errStoreDown }

func (failingStore) Clear(context.Context, string) error { return errStoreDown }

var transportErr = &domain.TransportError{Op: "POST /api/auth/login", Err: errors.New("connection refused")}

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func newTestClock() *testClock {
	return &testClock{t: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
}

var alice = domain.UserSummary{ID: "u1", FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", Role: "doctor"}

func newTestWorkspace(backend ports.Backend, tokens ports.TokenStore, clock *testClock) *Workspace {
	return NewWorkspace("client-1", WorkspaceDeps{
		Backend:  backend,
		Tokens:   tokens,
		Location: time.UTC,
		TokenTTL: time.Hour,
		Now:      clock.Now,
		Log:      zerolog.Nop(),
	})
}

func newMemoryStore(clock *testClock) *memory.TokenStore {
	return memory.NewTokenStore(clock.Now)
}
