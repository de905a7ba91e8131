package render

import (
	"time"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

const (
	defaultAppointmentType = "General Consultation"
	appointmentDuration    = "30 min"
	unknownDate            = "Date unknown"
)

var statusStyles = map[domain.AppointmentStatus]string{
	domain.StatusScheduled: "bg-blue-100 text-blue-800",
	domain.StatusCompleted: "bg-green-100 text-green-800",
	domain.StatusCancelled: "bg-red-100 text-red-800",
	domain.StatusPending:   "bg-yellow-100 text-yellow-800",
}

// StatusBadge styles a status. Unknown statuses take the pending style;
// a missing status is also labelled pending.
func StatusBadge(status domain.AppointmentStatus) Badge {
	label := string(status)
	if label == "" {
		label = string(domain.StatusPending)
	}
	style, ok := statusStyles[status]
	if !ok {
		style = statusStyles[domain.StatusPending]
	}
	return Badge{Label: label, Style: style}
}

// IsToday reports whether at falls on now's calendar date in loc. An unknown
// (zero) time is never today.
func IsToday(at, now time.Time, loc *time.Location) bool {
	return !at.IsZero() && SameDay(at, now, loc)
}

// IsOverdue reports whether an appointment is in the past and not completed.
// An appointment without a readable date is not overdue.
func IsOverdue(a domain.Appointment, now time.Time) bool {
	if a.AppointmentDate.IsZero() {
		return false
	}
	return a.AppointmentDate.Before(now) && a.Status != domain.StatusCompleted
}

// AppointmentCard is one entry of the appointments list.
type AppointmentCard struct {
	ID        string
	PatientID string
	Date      string
	Time      string
	IsToday   bool
	IsOverdue bool
	Type      string
	Status    Badge
	Duration  string
}

// AppointmentList is the appointments list. Empty selects the empty-state markup.
type AppointmentList struct {
	Cards []AppointmentCard
	Empty bool
}

// Appointments builds the appointments list as of now, formatting dates in loc.
// A missing date renders as unknown with no time.
func Appointments(appointments []domain.Appointment, now time.Time, loc *time.Location) AppointmentList {
	if len(appointments) == 0 {
		return AppointmentList{Empty: true}
	}
	cards := make([]AppointmentCard, len(appointments))
	for i, a := range appointments {
		date, clock := unknownDate, ""
		if !a.AppointmentDate.IsZero() {
			local := a.AppointmentDate.In(loc)
			date, clock = local.Format("1/2/2006"), local.Format("03:04 PM")
		}
		cards[i] = AppointmentCard{
			ID:        a.ID,
			PatientID: a.PatientID,
			Date:      date,
			Time:      clock,
			IsToday:   IsToday(a.AppointmentDate, now, loc),
			IsOverdue: IsOverdue(a, now),
			Type:      orDefault(a.Type, defaultAppointmentType),
			Status:    StatusBadge(a.Status),
			Duration:  appointmentDuration,
		}
	}
	return AppointmentList{Cards: cards}
}
