package domain

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/pkg/types"
)

// CalendarRules represents the scheduling configuration of a professional.
// Supports hierarchical configuration:
// 1. Professional-specific (tenant_id, professional_id)
// 2. Tenant-wide (tenant_id, NULL)
// 3. Compiled defaults
type CalendarRules struct {
	ID                      int64
	TenantID                int64
	ProfessionalID          *int64 // NULL = config for all professionals
	GranularityMinutes      int
	ProximityMinutes        int
	SuggestionBufferMinutes int
	BusinessOpen            types.TimeString
	BusinessClose           types.TimeString
	Location                *time.Location // Salon time zone, not stored per row; nil keeps the zone of the input
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultCalendarRules returns the compiled defaults (30 min grid, 15 min
// proximity and buffer, business hours 08:00-18:00)
func DefaultCalendarRules() CalendarRules {
	return CalendarRules{
		GranularityMinutes:      DefaultGranularityMinutes,
		ProximityMinutes:        DefaultProximityMinutes,
		SuggestionBufferMinutes: DefaultSuggestionBufferMinutes,
		BusinessOpen:            DefaultBusinessOpen,
		BusinessClose:           DefaultBusinessClose,
	}
}

// In converts t into the salon time zone. Without a zone t is returned as is
func (r *CalendarRules) In(t time.Time) time.Time {
	if r.Location == nil {
		return t
	}
	return t.In(r.Location)
}

// IsTenantWide returns true if this configuration applies to every professional
func (r *CalendarRules) IsTenantWide() bool {
	return r.ProfessionalID == nil
}

// IsProfessionalSpecific returns true if this configuration overrides one professional
func (r *CalendarRules) IsProfessionalSpecific() bool {
	return r.ProfessionalID != nil
}

// IsDefault returns true if the rules were not loaded from storage
func (r *CalendarRules) IsDefault() bool {
	return r.ID == 0
}

// Validate checks ranges of every field
func (r *CalendarRules) Validate() error {
	if !IsSupportedGranularity(r.GranularityMinutes) {
		return NewValidationError("granularity must be one of %v, got %d", SupportedGranularities, r.GranularityMinutes)
	}
	if r.ProximityMinutes < 0 || r.ProximityMinutes > MaxProximityMinutes {
		return NewValidationError("proximity must be within 0..%d minutes", MaxProximityMinutes)
	}
	if r.SuggestionBufferMinutes < 0 || r.SuggestionBufferMinutes > MaxSuggestionBuffer {
		return NewValidationError("suggestion buffer must be within 0..%d minutes", MaxSuggestionBuffer)
	}
	if err := r.BusinessOpen.Validate(); err != nil {
		return NewValidationError("invalid business open: %v", err)
	}
	if err := r.BusinessClose.Validate(); err != nil {
		return NewValidationError("invalid business close: %v", err)
	}
	if !r.BusinessOpen.IsBefore(r.BusinessClose) {
		return NewValidationError("business open %s must be before close %s", r.BusinessOpen, r.BusinessClose)
	}
	return nil
}

// BusinessHoursOn returns business hours anchored to date
func (r *CalendarRules) BusinessHoursOn(date time.Time) (TimeInterval, error) {
	return timeRangeOn(date, r.BusinessOpen, r.BusinessClose)
}

// ProximityThreshold returns the proximity window as a duration
func (r *CalendarRules) ProximityThreshold() time.Duration {
	return time.Duration(r.ProximityMinutes) * time.Minute
}

// SuggestionBuffer returns the buffer added after the latest conflict
func (r *CalendarRules) SuggestionBuffer() time.Duration {
	return time.Duration(r.SuggestionBufferMinutes) * time.Minute
}

// IsSupportedGranularity returns true for 15, 30 and 60 minutes
func IsSupportedGranularity(minutes int) bool {
	for _, g := range SupportedGranularities {
		if g == minutes {
			return true
		}
	}
	return false
}
