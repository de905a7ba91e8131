package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
	"github.com/clinicdesk/clinic-web/internal/core/ports"
)

const (
	pathLogin        = "/api/auth/login"
	pathRegister     = "/api/auth/register"
	pathMe           = "/api/auth/me"
	pathPatients     = "/api/patients"
	pathAppointments = "/api/appointments"
)

var _ ports.Backend = (*Client)(nil)

func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	const op = "POST " + pathLogin
	res := c.Do(ctx, "login", http.MethodPost, pathLogin, "", loginRequest{Email: email, Password: password})
	if err := res.AsError(op); err != nil {
		return nil, err
	}

	var body loginResponse
	if err := res.Decode(&body); err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	if body.Token == "" {
		return nil, &domain.TransportError{Op: op, Err: fmt.Errorf("%w: no token", ErrMalformedResponse)}
	}
	return &ports.LoginResult{Token: body.Token, User: body.User.toDomain()}, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	res := c.Do(ctx, "register", http.MethodPost, pathRegister, "", newRegisterRequest(reg))
	return res.AsError("POST " + pathRegister)
}

func (c *Client) Me(ctx context.Context, token string) (*domain.UserSummary, error) {
	const op = "GET " + pathMe
	res := c.Do(ctx, "me", http.MethodGet, pathMe, token, nil)
	if err := res.AsError(op); err != nil {
		return nil, err
	}

	var body userDTO
	if err := res.Decode(&body); err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	user := body.toDomain()
	return &user, nil
}

func (c *Client) ListPatients(ctx context.Context, token string) ([]domain.Patient, error) {
	const op = "GET " + pathPatients
	res := c.Do(ctx, "list_patients", http.MethodGet, pathPatients, token, nil)
	if err := res.AsError(op); err != nil {
		return nil, err
	}

	var body []patientDTO
	if err := res.Decode(&body); err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	out := make([]domain.Patient, len(body))
	for i, p := range body {
		out[i] = p.toDomain()
	}
	return out, nil
}

func (c *Client) CreatePatient(ctx context.Context, token string, in domain.NewPatient) error {
	res := c.Do(ctx, "create_patient", http.MethodPost, pathPatients, token, newPatientBody(in))
	return res.AsError("POST " + pathPatients)
}

func (c *Client) ListAppointments(ctx context.Context, token string) ([]domain.Appointment, error) {
	const op = "GET " + pathAppointments
	res := c.Do(ctx, "list_appointments", http.MethodGet, pathAppointments, token, nil)
	if err := res.AsError(op); err != nil {
		return nil, err
	}

	var body []appointmentDTO
	if err := res.Decode(&body); err != nil {
		return nil, &domain.TransportError{Op: op, Err: err}
	}
	out := make([]domain.Appointment, len(body))
	for i, a := range body {
		out[i] = a.toDomain(c.loc)
	}
	return out, nil
}
