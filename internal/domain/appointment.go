package domain

import (
	"time"
)

// Appointment represents a booked service for a client with a professional
type Appointment struct {
	ID             int64
	TenantID       int64
	ProfessionalID int64
	ClientID       int64
	ServiceID      int64
	Interval       TimeInterval
	Status         BookingStatus

	// Denormalized data for warnings and history
	ClientName  string
	ServiceName string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment takes part in overlap checks
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// IsTerminal returns true if no further status change is allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// DurationMinutes returns the length of the booked interval in minutes
func (a *Appointment) DurationMinutes() int {
	return int(a.Interval.Duration() / time.Minute)
}

// Clone returns a deep copy
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	c := *a
	if a.Notes != nil {
		notes := *a.Notes
		c.Notes = &notes
	}
	return &c
}

// AppointmentDraft is a proposed write: a new booking, or an edit of an
// existing one when AppointmentID is set
type AppointmentDraft struct {
	TenantID       int64
	ProfessionalID int64
	ClientID       int64
	ServiceID      int64
	AppointmentID  *int64
	Interval       TimeInterval

	ClientName  string
	ServiceName string
	Notes       *string
}

// IsEdit returns true if the draft reschedules an existing appointment
func (d *AppointmentDraft) IsEdit() bool {
	return d.AppointmentID != nil
}

// Validate checks the draft invariants that do not need any lookups
func (d *AppointmentDraft) Validate() error {
	if d.TenantID <= 0 {
		return NewValidationError("tenantID must be positive")
	}
	if d.ProfessionalID <= 0 {
		return NewValidationError("professionalID must be positive")
	}
	if d.ClientID <= 0 {
		return NewValidationError("clientID must be positive")
	}
	if d.ServiceID <= 0 {
		return NewValidationError("serviceID must be positive")
	}
	if d.AppointmentID != nil && *d.AppointmentID <= 0 {
		return NewValidationError("appointmentID must be positive")
	}
	if len(ptrString(d.Notes)) > MaxNotesLength {
		return NewValidationError("notes exceed %d characters", MaxNotesLength)
	}
	return d.Interval.Validate()
}

// AppointmentFilter typed filter for listing appointments
type AppointmentFilter struct {
	TenantID       int64           // Обязательный параметр
	ProfessionalID *int64          // nil - все специалисты
	ClientID       *int64          // nil - все клиенты
	From           *time.Time      // начало записи >= From
	To             *time.Time      // начало записи < To
	Statuses       []BookingStatus // пусто - любые статусы
}

// Matches reports whether the appointment satisfies the filter
func (f AppointmentFilter) Matches(a *Appointment) bool {
	if a.TenantID != f.TenantID {
		return false
	}
	if f.ProfessionalID != nil && a.ProfessionalID != *f.ProfessionalID {
		return false
	}
	if f.ClientID != nil && a.ClientID != *f.ClientID {
		return false
	}
	if f.From != nil && a.Interval.Start.Before(*f.From) {
		return false
	}
	if f.To != nil && !a.Interval.Start.Before(*f.To) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if a.Status == s {
			return true
		}
	}
	return false
}

// DayBounds returns [00:00, next day 00:00) of date in its location
func DayBounds(date time.Time) TimeInterval {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return TimeInterval{Start: start, End: start.AddDate(0, 0, 1)}
}

func ptrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
