package domain

import "fmt"

// BookingStatus represents the lifecycle state of an appointment
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// AllStatuses every known status, in lifecycle order
var AllStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
}

// ActiveStatuses statuses that take part in overlap checks
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
}

// TerminalStatuses statuses with no outgoing transitions
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
}

var transitions = map[BookingStatus]map[BookingStatus]struct{}{
	StatusScheduled: {
		StatusConfirmed: {},
		StatusCancelled: {},
	},
	StatusConfirmed: {
		StatusCompleted: {},
		StatusCancelled: {},
	},
}

// ParseBookingStatus converts an external string into a BookingStatus,
// rejecting unknown values
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", NewValidationError("unknown booking status %q", s)
	}
	return status, nil
}

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and cancelled
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsActive returns true if an appointment in this status blocks its interval
func (s BookingStatus) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// CanTransition reports whether from -> to is in the transition table
func CanTransition(from, to BookingStatus) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	_, ok = next[to]
	return ok
}

// Transition validates from -> to and returns *InvalidTransitionError otherwise
func Transition(from, to BookingStatus) error {
	if !to.IsValid() {
		return NewValidationError("unknown booking status %q", string(to))
	}
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// AllowedTransitions lists the statuses reachable from s
func AllowedTransitions(s BookingStatus) []BookingStatus {
	result := make([]BookingStatus, 0, 2)
	for _, candidate := range AllStatuses {
		if CanTransition(s, candidate) {
			result = append(result, candidate)
		}
	}
	return result
}

func (s BookingStatus) String() string {
	return string(s)
}

// InvalidTransitionError is returned for transitions outside the table
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// Is makes errors.Is(err, ErrInvalidTransition) work
func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
