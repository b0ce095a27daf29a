package commit_booking

import (
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/validation"
)

// validateRequest проверяет структуру запроса до обращения к справочникам
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	return nil
}

// buildDraft собирает черновик записи, длительность берётся из услуги
func buildDraft(req *Request, service *domain.Service) (*domain.AppointmentDraft, error) {
	interval, err := domain.NewInterval(req.StartsAt, service.DurationMinutes)
	if err != nil {
		return nil, err
	}

	draft := &domain.AppointmentDraft{
		TenantID:       req.TenantID,
		ProfessionalID: req.ProfessionalID,
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		AppointmentID:  req.AppointmentID,
		Interval:       interval,
		ClientName:     req.ClientName,
		ServiceName:    service.Name,
		Notes:          req.Notes,
	}

	if err := draft.Validate(); err != nil {
		return nil, err
	}

	return draft, nil
}

// toAppointment превращает черновик в запись для сохранения
func toAppointment(draft *domain.AppointmentDraft) *domain.Appointment {
	a := &domain.Appointment{
		TenantID:       draft.TenantID,
		ProfessionalID: draft.ProfessionalID,
		ClientID:       draft.ClientID,
		ServiceID:      draft.ServiceID,
		Interval:       draft.Interval,
		Status:         domain.StatusScheduled,
		ClientName:     draft.ClientName,
		ServiceName:    draft.ServiceName,
		Notes:          draft.Notes,
	}
	if draft.AppointmentID != nil {
		a.ID = *draft.AppointmentID
	}
	return a
}
