package conflicts

import (
	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Candidate предлагаемый интервал записи
type Candidate struct {
	TenantID             int64
	ProfessionalID       int64
	Interval             domain.TimeInterval
	ExcludeAppointmentID *int64 // При редактировании - сама редактируемая запись
}

// Validate проверяет кандидата до любых запросов
func (c Candidate) Validate() error {
	if c.TenantID <= 0 {
		return domain.NewValidationError("tenantID must be positive")
	}
	if c.ProfessionalID <= 0 {
		return domain.NewValidationError("professionalID must be positive")
	}
	if c.ExcludeAppointmentID != nil && *c.ExcludeAppointmentID <= 0 {
		return domain.NewValidationError("excludeAppointmentID must be positive")
	}
	return c.Interval.Validate()
}

// CandidateFromDraft строит кандидата из черновика записи
func CandidateFromDraft(d *domain.AppointmentDraft) Candidate {
	return Candidate{
		TenantID:             d.TenantID,
		ProfessionalID:       d.ProfessionalID,
		Interval:             d.Interval,
		ExcludeAppointmentID: d.AppointmentID,
	}
}
