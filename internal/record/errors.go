package record

import (
	"errors"
	"fmt"
)

// SessionErrorCode categorizes recording session errors.
type SessionErrorCode string

const (
	// ErrCodeNoActiveSession indicates end was called without an open
	// begin, or the most recent session was already closed.
	ErrCodeNoActiveSession SessionErrorCode = "NO_ACTIVE_SESSION"
)

// SessionError represents a user-facing recording failure.
type SessionError struct {
	// Code identifies the error category.
	Code SessionErrorCode

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNoActiveSession returns true if the error reports a missing recording
// session. Uses errors.As to handle wrapped errors.
func IsNoActiveSession(err error) bool {
	var se *SessionError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNoActiveSession
	}
	return false
}

// NewNoActiveSessionError creates a SessionError for an end without begin.
func NewNoActiveSessionError() *SessionError {
	return &SessionError{
		Code:    ErrCodeNoActiveSession,
		Message: "no recording in progress: start one with --begin",
	}
}
