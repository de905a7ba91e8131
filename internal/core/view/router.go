// Package view holds the top-level view state machine. The state is a plain
// value and Transition is pure; Router wraps it for a single workspace.
package view

import (
	"errors"
	"fmt"
)

// Section is one top-level area of the UI.
type Section string

const (
	SectionLogin        Section = "login"
	SectionRegister     Section = "register"
	SectionDashboard    Section = "dashboard"
	SectionPatients     Section = "patients"
	SectionAppointments Section = "appointments"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionLogin,
	SectionRegister,
	SectionDashboard,
	SectionPatients,
	SectionAppointments,
}

// Authenticated reports whether s belongs to the Authenticated group.
func (s Section) Authenticated() bool {
	switch s {
	case SectionDashboard, SectionPatients, SectionAppointments:
		return true
	}
	return false
}

// Valid reports whether s names a known section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// Path is the URL the section is served under.
func (s Section) Path() string { return "/" + string(s) }

var ErrInvalidTransition = errors.New("invalid view transition")

// State is the router's tagged union: LoggedOut{Login|Register} or
// Authenticated{Dashboard|Patients|Appointments}, discriminated by Section.
type State struct {
	Section Section
}

// Initial is LoggedOut.Login.
func Initial() State { return State{Section: SectionLogin} }

// Authenticated reports whether the state is in the Authenticated group.
func (s State) Authenticated() bool { return s.Section.Authenticated() }

// SectionNode is one section container of the rendered page.
type SectionNode struct {
	Section Section
	Visible bool
}

// Nodes projects the state onto the five section containers. Exactly one of
// them is visible.
func (s State) Nodes() []SectionNode {
	nodes := make([]SectionNode, len(Sections))
	for i, sec := range Sections {
		nodes[i] = SectionNode{Section: sec, Visible: sec == s.Section}
	}
	return nodes
}

// EventKind discriminates router events.
type EventKind int

const (
	EventShowLogin EventKind = iota
	EventShowRegister
	EventSessionEstablished
	EventNavigate
	EventLoggedOut
)

func (k EventKind) String() string {
	switch k {
	case EventShowLogin:
		return "show_login"
	case EventShowRegister:
		return "show_register"
	case EventSessionEstablished:
		return "session_established"
	case EventNavigate:
		return "navigate"
	case EventLoggedOut:
		return "logged_out"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is an input to Transition. Target is only read for EventNavigate.
type Event struct {
	Kind   EventKind
	Target Section
}

func ShowLogin() Event { return Event{Kind: EventShowLogin} }
func ShowRegister() Event { return Event{Kind: EventShowRegister} }
func SessionEstablished() Event { return Event{Kind: EventSessionEstablished} }
func LoggedOut() Event { return Event{Kind: EventLoggedOut} }
func Navigate(target Section) Event { return Event{Kind: EventNavigate, Target: target} }

// Effect tells the caller what to do after a transition. Load is empty when
// no data needs fetching; otherwise it names the section whose data must be
// fetched fresh.
type Effect struct {
	Load Section
}

// NeedsLoad reports whether the effect carries a data load.
func (e Effect) NeedsLoad() bool { return e.Load != "" }

// Transition computes the next state for e. On error the returned state is
// s unchanged and the effect is empty.
func Transition(s State, e Event) (State, Effect, error) {
	switch e.Kind {
	case EventShowLogin:
		if s.Authenticated() {
			return s, Effect{}, invalid(s, e)
		}
		return State{Section: SectionLogin}, Effect{}, nil

	case EventShowRegister:
		if s.Authenticated() {
			return s, Effect{}, invalid(s, e)
		}
		return State{Section: SectionRegister}, Effect{}, nil

	case EventSessionEstablished:
		return State{Section: SectionDashboard}, Effect{Load: SectionDashboard}, nil

	case EventNavigate:
		if !s.Authenticated() || !e.Target.Authenticated() {
			return s, Effect{}, invalid(s, e)
		}
		return State{Section: e.Target}, Effect{Load: e.Target}, nil

	case EventLoggedOut:
		return State{Section: SectionLogin}, Effect{}, nil
	}
	return s, Effect{}, invalid(s, e)
}

func invalid(s State, e Event) error {
	if e.Kind == EventNavigate {
		return fmt.Errorf("%w: %s to %q from %s", ErrInvalidTransition, e.Kind, e.Target, s.Section)
	}
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, e.Kind, s.Section)
}

// Router holds the current state of one workspace. It is not safe for
// concurrent use; the owning workspace serialises access.
type Router struct {
	state State
}

// NewRouter returns a router in the initial state.
func NewRouter() *Router {
	return &Router{state: Initial()}
}

// State returns the current state.
func (r *Router) State() State { return r.state }

// Dispatch applies e and returns the resulting effect.
func (r *Router) Dispatch(e Event) (Effect, error) {
	next, eff, err := Transition(r.state, e)
	if err != nil {
		return Effect{}, err
	}
	r.state = next
	return eff, nil
}
