package macro

import (
	"errors"
	"fmt"
)

// StoreErrorCode categorizes store errors.
type StoreErrorCode string

const (
	// ErrCodeNotFound indicates the macro exists in no root.
	ErrCodeNotFound StoreErrorCode = "MACRO_NOT_FOUND"

	// ErrCodeProtected indicates a delete was attempted on a macro that
	// lives only in a read-only root.
	ErrCodeProtected StoreErrorCode = "MACRO_PROTECTED"
)

// StoreError represents a user-facing macro store failure. It aborts the
// current action; callers map it to a non-zero process exit.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Name is the macro name as the user supplied it (display form).
	Name string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (macro=%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNotFound returns true if the error is a macro resolution failure.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotFound
	}
	return false
}

// IsProtected returns true if the error is a protected-macro delete failure.
// Uses errors.As to handle wrapped errors.
func IsProtected(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeProtected
	}
	return false
}

// NewNotFoundError creates a StoreError for a macro absent from every root.
func NewNotFoundError(name string) *StoreError {
	return &StoreError{
		Code:    ErrCodeNotFound,
		Name:    DisplayName(name),
		Message: "macro not found in any root",
	}
}

// NewProtectedError creates a StoreError for a delete attempt on a
// read-only-root macro.
func NewProtectedError(name string) *StoreError {
	return &StoreError{
		Code:    ErrCodeProtected,
		Name:    DisplayName(name),
		Message: "macro lives in a read-only root and cannot be deleted",
	}
}
