// Package render turns backend records into view models for the templates.
// Every function is deterministic for a given reference time so that a list
// rendered twice from the same data produces the same output.
package render

import (
	"time"
	"unicode/utf8"
)

// Age returns the whole years between dob and now, compared on calendar
// dates: a birthday later in the year than now has not happened yet.
func Age(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

// SameDay reports whether a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// Initials is the first character of each name, as written.
func Initials(first, last string) string {
	return firstRune(first) + firstRune(last)
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return ""
	}
	return string(r)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
