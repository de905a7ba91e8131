package handler

import (
	"strings"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	FirstName      string `form:"firstName" validate:"required"`
	LastName       string `form:"lastName" validate:"required"`
	Username       string `form:"username" validate:"required"`
	Email          string `form:"email" validate:"required,email"`
	Password       string `form:"password" validate:"required"`
	Role           string `form:"role" validate:"required"`
	Specialization string `form:"specialization"`
}

func (f registerForm) registration() domain.Registration {
	return domain.Registration{
		FirstName:      f.FirstName,
		LastName:       f.LastName,
		Username:       f.Username,
		Email:          f.Email,
		Password:       f.Password,
		Role:           f.Role,
		Specialization: f.Specialization,
	}
}

// patientForm mirrors the add-patient modal. Email is only checked when
// filled in, like the native email input.
type patientForm struct {
	FirstName   string `form:"firstName" validate:"required"`
	LastName    string `form:"lastName" validate:"required"`
	DateOfBirth string `form:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Gender      string `form:"gender" validate:"required,oneof=Male Female Other"`
	Email       string `form:"email" validate:"omitempty,email"`
	Phone       string `form:"phone"`
	Address     string `form:"address"`
}

func (f patientForm) newPatient() domain.NewPatient {
	return domain.NewPatient{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		DateOfBirth: f.DateOfBirth,
		Gender:      f.Gender,
		Email:       strings.TrimSpace(f.Email),
		Phone:       f.Phone,
		Address:     f.Address,
	}
}

// fields is what the modal is pre-filled with when the form is shown again.
func (f patientForm) fields() map[string]string {
	return map[string]string{
		"firstName":   f.FirstName,
		"lastName":    f.LastName,
		"dateOfBirth": f.DateOfBirth,
		"gender":      f.Gender,
		"email":       f.Email,
		"phone":       f.Phone,
		"address":     f.Address,
	}
}
