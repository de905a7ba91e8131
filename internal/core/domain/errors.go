package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport matches every TransportError via errors.Is.
var ErrTransport = errors.New("backend unreachable")

// ErrTokenNotFound is returned by token stores when no token is persisted.
var ErrTokenNotFound = errors.New("token not found")

// RejectedError is a non-2xx backend answer. Message is the backend-provided
// text and may be empty when the error body was missing or unreadable.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend rejected request: status %d", e.Status)
	}
	return fmt.Sprintf("backend rejected request: status %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the backend refused the credentials or token.
func (e *RejectedError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// TransportError is a network-level failure: DNS, refused or reset
// connections, cancelled contexts and malformed success bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// RejectionMessage returns the backend message carried by err, or fallback
// when err is not a rejection or the backend sent no message.
func RejectionMessage(err error, fallback string) string {
	var rej *RejectedError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return fallback
}
