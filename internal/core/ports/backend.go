package ports

import (
	"context"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	Token string
	User  domain.UserSummary
}

// Backend is the clinic REST API as seen by the front end. Every method
// returns *domain.RejectedError for non-2xx answers and an error matching
// domain.ErrTransport for network-level failures.
type Backend interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) error
	// Me verifies token and returns the user it belongs to.
	Me(ctx context.Context, token string) (*domain.UserSummary, error)
	ListPatients(ctx context.Context, token string) ([]domain.Patient, error)
	CreatePatient(ctx context.Context, token string, in domain.NewPatient) error
	ListAppointments(ctx context.Context, token string) ([]domain.Appointment, error)
}
