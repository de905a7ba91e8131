package domain

import "time"

// AppointmentStatus is the lifecycle label the backend attaches to an appointment.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusPending   AppointmentStatus = "pending"
)

// Known reports whether s is one of the four statuses the UI styles.
func (s AppointmentStatus) Known() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusPending:
		return true
	}
	return false
}

// Appointment is a scheduled visit as returned by the backend.
type Appointment struct {
	ID              string
	PatientID       string
	AppointmentDate time.Time
	Type            string
	Status          AppointmentStatus
}
