package transition_status

import (
	"github.com/ddduartediego/BelloProject-sub000/internal/service/appointments/models"
	transitionStatus "github.com/ddduartediego/BelloProject-sub000/internal/usecase/transition_status"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status string `json:"status"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	Appointment    *models.AppointmentResponse `json:"appointment"`
	PreviousStatus string                      `json:"previousStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(tenantID, appointmentID int64) *transitionStatus.Request {
	return &transitionStatus.Request{
		TenantID:      tenantID,
		AppointmentID: appointmentID,
		Status:        r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionStatus.Response) *TransitionResponse {
	return &TransitionResponse{
		Appointment:    models.FromDomainAppointment(resp.Appointment),
		PreviousStatus: resp.From.String(),
	}
}
