package render

import (
	"strconv"
	"time"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

// Badge is a coloured pill with an optional icon.
type Badge struct {
	Label string
	Style string
	Icon  string
}

// PatientRow is one row of the patients table.
type PatientRow struct {
	ID       string
	Initials string
	FullName string
	Email    string
	Age      int
	AgeLabel string
	Gender   Badge
	Phone    string
	Status   Badge
}

// PatientList is the patients table. Empty selects the empty-state markup.
type PatientList struct {
	Rows  []PatientRow
	Empty bool
}

var activeBadge = Badge{Label: "Active", Style: "bg-green-100 text-green-800", Icon: "fa-circle"}

// GenderBadge maps the gender enumeration onto its badge; anything other
// than Male or Female renders neutral.
func GenderBadge(gender string) Badge {
	switch gender {
	case domain.GenderMale:
		return Badge{Label: gender, Style: "bg-blue-100 text-blue-800", Icon: "fa-mars"}
	case domain.GenderFemale:
		return Badge{Label: gender, Style: "bg-pink-100 text-pink-800", Icon: "fa-venus"}
	}
	return Badge{Label: gender, Style: "bg-gray-100 text-gray-800", Icon: "fa-genderless"}
}

// Patients builds the patients table as of now. Calendar comparisons for
// ages use now's location. A missing date of birth renders as unknown.
func Patients(patients []domain.Patient, now time.Time) PatientList {
	if len(patients) == 0 {
		return PatientList{Empty: true}
	}
	rows := make([]PatientRow, len(patients))
	for i, p := range patients {
		age, label := 0, "Unknown age"
		if !p.DateOfBirth.IsZero() {
			age = Age(p.DateOfBirth, now)
			label = strconv.Itoa(age) + " years"
		}
		rows[i] = PatientRow{
			ID:       p.ID,
			Initials: Initials(p.FirstName, p.LastName),
			FullName: p.FirstName + " " + p.LastName,
			Email:    orDefault(p.Email, "No email"),
			Age:      age,
			AgeLabel: label,
			Gender:   GenderBadge(p.Gender),
			Phone:    orDefault(p.Phone, "No phone"),
			Status:   activeBadge,
		}
	}
	return PatientList{Rows: rows}
}
