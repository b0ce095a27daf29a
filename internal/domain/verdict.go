package domain

import "time"

// ConflictVerdict is the outcome of a conflict check
type ConflictVerdict struct {
	HasConflict bool
	Conflicts   []*Appointment
	Warnings    []string
	Suggestion  *time.Time
}

// HasWarnings returns true if there are proximity warnings
func (v *ConflictVerdict) HasWarnings() bool {
	return len(v.Warnings) > 0
}

// IsClear returns true if there is neither a conflict nor a warning
func (v *ConflictVerdict) IsClear() bool {
	return !v.HasConflict && !v.HasWarnings()
}

// ConflictIDs returns the IDs of the conflicting appointments
func (v *ConflictVerdict) ConflictIDs() []int64 {
	ids := make([]int64, len(v.Conflicts))
	for i, c := range v.Conflicts {
		ids[i] = c.ID
	}
	return ids
}
