package domain

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Patient is a record owned by the backend. The client never mutates it.
type Patient struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
	Email       string
	Phone       string
	Address     string
}

// NewPatient is the body of a create-patient request. Blank optional fields
// are omitted on the wire.
type NewPatient struct {
	FirstName   string
	LastName    string
	DateOfBirth string // YYYY-MM-DD as entered in the date field
	Gender      string
	Email       string
	Phone       string
	Address     string
}
