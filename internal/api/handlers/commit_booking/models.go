package commit_booking

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	"github.com/ddduartediego/BelloProject-sub000/internal/service/appointments/models"
	commitBooking "github.com/ddduartediego/BelloProject-sub000/internal/usecase/commit_booking"
)

// CommitRequest HTTP request model для создания и переноса записи
type CommitRequest struct {
	ProfessionalID int64     `json:"professionalId"`
	ClientID       int64     `json:"clientId"`
	ServiceID      int64     `json:"serviceId"`
	StartsAt       time.Time `json:"startsAt"` // RFC3339
	ClientName     string    `json:"clientName,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
}

// CommitResponse HTTP response model
type CommitResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Warnings    []string                    `json:"warnings"`
	Rescheduled bool                        `json:"rescheduled"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// appointmentID = nil - создание новой записи. startsAt переводится в пояс location
func (r *CommitRequest) ToUseCaseRequest(tenantID int64, appointmentID *int64, location *time.Location) *commitBooking.Request {
	return &commitBooking.Request{
		TenantID:       tenantID,
		ProfessionalID: r.ProfessionalID,
		ClientID:       r.ClientID,
		ServiceID:      r.ServiceID,
		AppointmentID:  appointmentID,
		StartsAt:       handlers.InLocation(r.StartsAt, location),
		ClientName:     r.ClientName,
		Notes:          r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitBooking.Response) *CommitResponse {
	warnings := resp.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &CommitResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		Warnings:    warnings,
		Rescheduled: resp.Rescheduled,
	}
}
