package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

// flexID accepts ids sent as JSON strings or numbers.
type flexID string

func (id *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

type userDTO struct {
	ID             flexID `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Specialization string `json:"specialization"`
}

func (u userDTO) toDomain() domain.UserSummary {
	return domain.UserSummary{
		ID:             string(u.ID),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		Role:           u.Role,
		Specialization: u.Specialization,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

type registerRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

func newRegisterRequest(r domain.Registration) registerRequest {
	return registerRequest{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Username:       r.Username,
		Email:          r.Email,
		Password:       r.Password,
		Role:           r.Role,
		Specialization: r.EffectiveSpecialization(),
	}
}

type patientDTO struct {
	ID          flexID `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

func (p patientDTO) toDomain() domain.Patient {
	return domain.Patient{
		ID:          string(p.ID),
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: parseDate(p.DateOfBirth),
		Gender:      p.Gender,
		Email:       p.Email,
		Phone:       p.Phone,
		Address:     p.Address,
	}
}

type newPatientRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

func newPatientBody(p domain.NewPatient) newPatientRequest {
	return newPatientRequest{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Email:       strings.TrimSpace(p.Email),
		Phone:       strings.TrimSpace(p.Phone),
		Address:     strings.TrimSpace(p.Address),
	}
}

type appointmentDTO struct {
	ID              flexID `json:"id"`
	PatientID       flexID `json:"patientId"`
	AppointmentDate string `json:"appointmentDate"`
	Type            string `json:"type"`
	Status          string `json:"status"`
}

func (a appointmentDTO) toDomain(loc *time.Location) domain.Appointment {
	return domain.Appointment{
		ID:              string(a.ID),
		PatientID:       string(a.PatientID),
		AppointmentDate: parseDateTime(a.AppointmentDate, loc),
		Type:            a.Type,
		Status:          domain.AppointmentStatus(a.Status),
	}
}

// parseDate reads a date of birth. Dates carry no zone; the calendar fields
// are kept as sent. Unreadable values yield the zero time.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// parseDateTime reads an appointment timestamp. Values without a zone are
// interpreted in loc.
func parseDateTime(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}
