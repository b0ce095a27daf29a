package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation malformed input rejected before any scheduling logic runs
	ErrValidation = errors.New("validation error")

	// ErrConflict matches every *ConflictError
	ErrConflict = errors.New("booking conflict")

	// ErrInvalidTransition matches every *InvalidTransitionError
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound an appointment, professional or service does not exist
	ErrNotFound = errors.New("not found")
)

// NewValidationError wraps ErrValidation with a formatted message
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ConflictError carries the verdict that rejected a booking
type ConflictError struct {
	Verdict *ConflictVerdict
}

// NewConflictError wraps a verdict; the verdict is forced to HasConflict=true
func NewConflictError(verdict *ConflictVerdict) *ConflictError {
	if verdict == nil {
		verdict = &ConflictVerdict{}
	}
	verdict.HasConflict = true
	return &ConflictError{Verdict: verdict}
}

func (e *ConflictError) Error() string {
	if e.Verdict == nil {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%s: %d conflicting appointment(s)", ErrConflict.Error(), len(e.Verdict.Conflicts))
}

// Is makes errors.Is(err, ErrConflict) work
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
