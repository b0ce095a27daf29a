package domain

import "time"

// SlotReason explains why a slot is unavailable or flagged
type SlotReason string

const (
	SlotReasonNone     SlotReason = ""
	SlotReasonOccupied SlotReason = "occupied"
	SlotReasonBreak    SlotReason = "break"
	SlotReasonTooClose SlotReason = "tooClose"
)

// Slot represents a candidate start time. Never persisted
type Slot struct {
	Start     time.Time
	Available bool
	Reason    SlotReason
	Detail    string
}

// IsFree returns true if the slot is bookable without any warning
func (s *Slot) IsFree() bool {
	return s.Available && s.Reason == SlotReasonNone
}

// IsFlagged returns true if the slot is bookable but close to another booking
func (s *Slot) IsFlagged() bool {
	return s.Available && s.Reason == SlotReasonTooClose
}
