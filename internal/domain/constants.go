package domain

// Default scheduling values
const (
	DefaultGranularityMinutes      = 30
	DefaultProximityMinutes        = 15
	DefaultSuggestionBufferMinutes = 15
	DefaultBusinessOpen            = "08:00"
	DefaultBusinessClose           = "18:00"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 720 // 12 hours
	MaxProximityMinutes       = 240
	MaxSuggestionBuffer       = 240
	MaxNotesLength            = 500
)

// SupportedGranularities slot steps accepted by the calendar
var SupportedGranularities = []int{15, 30, 60}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
