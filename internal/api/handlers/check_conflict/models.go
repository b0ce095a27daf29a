package check_conflict

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	checkConflict "github.com/ddduartediego/BelloProject-sub000/internal/usecase/check_conflict"
)

// CheckConflictRequest HTTP request model
type CheckConflictRequest struct {
	ProfessionalID       int64     `json:"professionalId"`
	StartsAt             time.Time `json:"startsAt"` // RFC3339
	ServiceID            *int64    `json:"serviceId,omitempty"`
	DurationMinutes      *int      `json:"durationMinutes,omitempty"`
	ExcludeAppointmentID *int64    `json:"excludeAppointmentId,omitempty"`
}

// CheckConflictResponse HTTP response model
type CheckConflictResponse struct {
	StartsAt time.Time                `json:"startsAt"`
	EndsAt   time.Time                `json:"endsAt"`
	Verdict  handlers.VerdictResponse `json:"verdict"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case, startsAt в поясе location
func (r *CheckConflictRequest) ToUseCaseRequest(tenantID int64, location *time.Location) *checkConflict.Request {
	return &checkConflict.Request{
		TenantID:             tenantID,
		ProfessionalID:       r.ProfessionalID,
		StartsAt:             handlers.InLocation(r.StartsAt, location),
		ServiceID:            r.ServiceID,
		DurationMinutes:      r.DurationMinutes,
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflict.Response) *CheckConflictResponse {
	return &CheckConflictResponse{
		StartsAt: resp.Interval.Start,
		EndsAt:   resp.Interval.End,
		Verdict:  handlers.FromDomainVerdict(resp.Verdict),
	}
}
