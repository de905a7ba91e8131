package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-web/internal/core/ports"
	"github.com/clinicdesk/clinic-web/internal/core/render"
	"github.com/clinicdesk/clinic-web/internal/core/view"
)

// SectionData is the result of loading one section. Only the field of the
// loaded section is set; a nil list means its fetch failed.
type SectionData struct {
	Dashboard    *render.Dashboard
	Patients     *render.PatientList
	Appointments *render.AppointmentList
}

// SectionLoader fetches the records a section shows and renders them.
type SectionLoader struct {
	backend ports.Backend
	loc     *time.Location
	now     func() time.Time
	log     zerolog.Logger
}

// NewSectionLoader returns a loader that formats dates in loc.
func NewSectionLoader(backend ports.Backend, loc *time.Location, now func() time.Time, log zerolog.Logger) *SectionLoader {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &SectionLoader{backend: backend, loc: loc, now: now, log: log}
}

// Load fetches the data of sec. Sections without data yield an empty result.
func (l *SectionLoader) Load(ctx context.Context, token string, sec view.Section) SectionData {
	switch sec {
	case view.SectionDashboard:
		d := l.Dashboard(ctx, token)
		return SectionData{Dashboard: &d}
	case view.SectionPatients:
		return SectionData{Patients: l.Patients(ctx, token)}
	case view.SectionAppointments:
		return SectionData{Appointments: l.Appointments(ctx, token)}
	}
	return SectionData{}
}

// Dashboard fetches patients and appointments concurrently. Each figure is
// set only by its own fetch, so one failure leaves the other intact.
func (l *SectionLoader) Dashboard(ctx context.Context, token string) render.Dashboard {
	d := render.NewDashboard()
	now := l.now()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		patients, err := l.backend.ListPatients(ctx, token)
		if err != nil {
			l.log.Warn().Err(err).Msg("dashboard: patients fetch failed")
			return
		}
		d.TotalPatients = render.Known(len(patients))
	}()
	go func() {
		defer wg.Done()
		appointments, err := l.backend.ListAppointments(ctx, token)
		if err != nil {
			l.log.Warn().Err(err).Msg("dashboard: appointments fetch failed")
			return
		}
		d.TodayAppointments = render.Known(render.TodayCount(appointments, now, l.loc))
	}()
	// The page renders once, so it waits for the slower fetch.
	wg.Wait()

	return d
}

// Patients loads and renders the patients table.
func (l *SectionLoader) Patients(ctx context.Context, token string) *render.PatientList {
	patients, err := l.backend.ListPatients(ctx, token)
	if err != nil {
		l.log.Warn().Err(err).Msg("patients fetch failed")
		return nil
	}
	list := render.Patients(patients, l.now().In(l.loc))
	return &list
}

// Appointments loads and renders the appointments list.
func (l *SectionLoader) Appointments(ctx context.Context, token string) *render.AppointmentList {
	appointments, err := l.backend.ListAppointments(ctx, token)
	if err != nil {
		l.log.Warn().Err(err).Msg("appointments fetch failed")
		return nil
	}
	list := render.Appointments(appointments, l.now(), l.loc)
	return &list
}
