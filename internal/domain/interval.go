package domain

import (
	"time"
)

// TimeInterval is a half-open interval [Start, End).
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval of durationMinutes starting at start.
func NewInterval(start time.Time, durationMinutes int) (TimeInterval, error) {
	if durationMinutes <= 0 {
		return TimeInterval{}, NewValidationError("duration must be positive, got %d minutes", durationMinutes)
	}
	return TimeInterval{Start: start, End: start.Add(time.Duration(durationMinutes) * time.Minute)}, nil
}

// Validate rejects zero-length and inverted intervals.
func (i TimeInterval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return NewValidationError("interval bounds are required")
	}
	if !i.Start.Before(i.End) {
		return NewValidationError("interval start %s must be before end %s",
			i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
	}
	return nil
}

// IsEmpty returns true for zero-length or inverted intervals.
func (i TimeInterval) IsEmpty() bool {
	return !i.Start.Before(i.End)
}

func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Contains reports whether t lies inside [Start, End).
func (i TimeInterval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps is the single collision predicate used across the service.
// Back-to-back intervals (a.End == b.Start) do not overlap; empty intervals
// never overlap anything.
func Overlaps(a, b TimeInterval) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ProximityMinutes is the absolute distance between the two start times.
// Advisory only, never used to block a booking.
func ProximityMinutes(a, b TimeInterval) float64 {
	d := a.Start.Sub(b.Start)
	if d < 0 {
		d = -d
	}
	return d.Minutes()
}
