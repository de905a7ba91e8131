package render

import (
	"strconv"
	"time"

	"github.com/clinicdesk/clinic-web/internal/core/domain"
)

// Metric is a dashboard figure that may be missing when its fetch failed.
type Metric struct {
	Value int
	Known bool
}

// Known wraps a loaded value.
func Known(v int) Metric { return Metric{Value: v, Known: true} }

func (m Metric) String() string {
	if !m.Known {
		return "—"
	}
	return strconv.Itoa(m.Value)
}

// Dashboard holds the three summary figures.
type Dashboard struct {
	TotalPatients     Metric
	TodayAppointments Metric
	// RecentRecords has no backing data on the backend and is always zero.
	RecentRecords Metric
}

// NewDashboard returns a dashboard with both fetched figures unknown.
func NewDashboard() Dashboard {
	return Dashboard{RecentRecords: Known(0)}
}

// TodayCount counts appointments on now's calendar date in loc.
func TodayCount(appointments []domain.Appointment, now time.Time, loc *time.Location) int {
	n := 0
	for _, a := range appointments {
		if IsToday(a.AppointmentDate, now, loc) {
			n++
		}
	}
	return n
}
