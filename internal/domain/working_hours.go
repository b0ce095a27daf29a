package domain

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/pkg/types"
)

// WorkingHours is a professional's working window for one weekday,
// with an optional break
type WorkingHours struct {
	TenantID       int64
	ProfessionalID int64
	Weekday        time.Weekday
	Start          types.TimeString
	End            types.TimeString
	BreakStart     *types.TimeString
	BreakEnd       *types.TimeString
}

// HasBreak returns true if both break bounds are set
func (w *WorkingHours) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil
}

// Validate checks start < end and that the break lies within [start, end]
func (w *WorkingHours) Validate() error {
	if w.Weekday < time.Sunday || w.Weekday > time.Saturday {
		return NewValidationError("invalid weekday %d", int(w.Weekday))
	}
	if err := w.Start.Validate(); err != nil {
		return NewValidationError("invalid start: %v", err)
	}
	if err := w.End.Validate(); err != nil {
		return NewValidationError("invalid end: %v", err)
	}
	if !w.Start.IsBefore(w.End) {
		return NewValidationError("working hours start %s must be before end %s", w.Start, w.End)
	}

	if (w.BreakStart == nil) != (w.BreakEnd == nil) {
		return NewValidationError("break requires both start and end")
	}
	if !w.HasBreak() {
		return nil
	}

	if err := w.BreakStart.Validate(); err != nil {
		return NewValidationError("invalid break start: %v", err)
	}
	if err := w.BreakEnd.Validate(); err != nil {
		return NewValidationError("invalid break end: %v", err)
	}
	if !w.BreakStart.IsBefore(*w.BreakEnd) {
		return NewValidationError("break start %s must be before break end %s", *w.BreakStart, *w.BreakEnd)
	}
	if w.BreakStart.IsBefore(w.Start) || w.BreakEnd.IsAfter(w.End) {
		return NewValidationError("break %s-%s must lie within %s-%s", *w.BreakStart, *w.BreakEnd, w.Start, w.End)
	}
	return nil
}

// WindowOn returns the working window anchored to date
func (w *WorkingHours) WindowOn(date time.Time) (TimeInterval, error) {
	return timeRangeOn(date, w.Start, w.End)
}

// BreakOn returns the break anchored to date, or nil if there is none
func (w *WorkingHours) BreakOn(date time.Time) (*TimeInterval, error) {
	if !w.HasBreak() {
		return nil, nil
	}
	interval, err := timeRangeOn(date, *w.BreakStart, *w.BreakEnd)
	if err != nil {
		return nil, err
	}
	return &interval, nil
}

// WeeklySchedule working hours of one professional, at most one entry per weekday
type WeeklySchedule []WorkingHours

// ForWeekday returns the entry for the weekday, or nil if the professional
// does not work that day
func (s WeeklySchedule) ForWeekday(day time.Weekday) *WorkingHours {
	for i := range s {
		if s[i].Weekday == day {
			return &s[i]
		}
	}
	return nil
}

// Validate validates every entry and rejects duplicated weekdays
func (s WeeklySchedule) Validate() error {
	seen := make(map[time.Weekday]bool, len(s))
	for i := range s {
		if seen[s[i].Weekday] {
			return NewValidationError("duplicated weekday %s", s[i].Weekday)
		}
		seen[s[i].Weekday] = true
		if err := s[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func timeRangeOn(date time.Time, from, to types.TimeString) (TimeInterval, error) {
	start, err := from.On(date)
	if err != nil {
		return TimeInterval{}, NewValidationError("invalid time %q: %v", from, err)
	}
	end, err := to.On(date)
	if err != nil {
		return TimeInterval{}, NewValidationError("invalid time %q: %v", to, err)
	}
	return TimeInterval{Start: start, End: end}, nil
}
