// Package present implements the transient feedback surfaces of a workspace:
// a single-slot notification, a blocking alert and one global modal.
package present

import (
	"strings"
	"time"
)

// NotificationDuration is how long a notification stays on screen.
const NotificationDuration = 5 * time.Second

// Severity selects the icon and colour of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ParseSeverity maps s onto a known severity, falling back to info.
func ParseSeverity(s string) Severity {
	switch sev := Severity(strings.ToLower(strings.TrimSpace(s))); sev {
	case SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo:
		return sev
	}
	return SeverityInfo
}

// Icon returns the icon classes for the severity.
func (s Severity) Icon() string {
	switch s {
	case SeveritySuccess:
		return "fas fa-check-circle text-green-500"
	case SeverityError:
		return "fas fa-exclamation-circle text-red-500"
	case SeverityWarning:
		return "fas fa-exclamation-triangle text-yellow-500"
	}
	return "fas fa-info-circle text-blue-500"
}

// Notification is the content of the notification slot.
type Notification struct {
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	ShownAt  time.Time `json:"shownAt"`
}

// Remaining is the time left before the notification dismisses itself.
func (n Notification) Remaining(now time.Time) time.Duration {
	left := n.ShownAt.Add(NotificationDuration).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// ModalKind identifies what the modal surface shows.
type ModalKind string

const ModalAddPatient ModalKind = "add_patient"

// Modal is the single global modal surface.
type Modal struct {
	Kind    ModalKind         `json:"kind,omitempty"`
	Fields  map[string]string `json:"-"`
	Visible bool              `json:"visible"`
}

// Presenter owns the feedback state of one workspace. Not safe for
// concurrent use.
type Presenter struct {
	now   func() time.Time
	note  *Notification
	alert string
	modal Modal
}

// NewPresenter returns a presenter reading time from now; nil means time.Now.
func NewPresenter(now func() time.Time) *Presenter {
	if now == nil {
		now = time.Now
	}
	return &Presenter{now: now}
}

// Notify replaces the current notification. Unknown severities render as info.
func (p *Presenter) Notify(title, message string, sev Severity) {
	p.note = &Notification{
		Title:    title,
		Message:  message,
		Severity: ParseSeverity(string(sev)),
		ShownAt:  p.now(),
	}
}

// Notification returns the notification still on screen, if any.
func (p *Presenter) Notification() (Notification, bool) {
	if p.note == nil {
		return Notification{}, false
	}
	if p.note.Remaining(p.now()) <= 0 {
		p.note = nil
		return Notification{}, false
	}
	return *p.note, true
}

// Alert raises the blocking alert shown on the next rendered page.
func (p *Presenter) Alert(message string) {
	p.alert = message
}

// TakeAlert returns and clears the pending alert.
func (p *Presenter) TakeAlert() (string, bool) {
	msg := p.alert
	p.alert = ""
	return msg, msg != ""
}

// ShowModal replaces the modal content and makes it visible.
func (p *Presenter) ShowModal(kind ModalKind, fields map[string]string) {
	p.modal = Modal{Kind: kind, Fields: fields, Visible: true}
}

// HideModal hides the modal. Its content is kept until the next ShowModal.
func (p *Presenter) HideModal() {
	p.modal.Visible = false
}

// Modal returns the modal surface.
func (p *Presenter) Modal() Modal {
	return p.modal
}
