package models

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Request модели

// ListRequest запрос списка записей арендатора.
// Date задаёт один день, From/To - произвольный диапазон начала записи
type ListRequest struct {
	TenantID       int64
	ProfessionalID *int64
	ClientID       *int64
	Date           *time.Time
	From           *time.Time
	To             *time.Time
	Statuses       []string
}

// Response модели

// AppointmentResponse запись в ответах API
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	TenantID        int64     `json:"tenantId"`
	ProfessionalID  int64     `json:"professionalId"`
	ClientID        int64     `json:"clientId"`
	ServiceID       int64     `json:"serviceId"`
	ClientName      string    `json:"clientName,omitempty"`
	ServiceName     string    `json:"serviceName,omitempty"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:              a.ID,
		TenantID:        a.TenantID,
		ProfessionalID:  a.ProfessionalID,
		ClientID:        a.ClientID,
		ServiceID:       a.ServiceID,
		ClientName:      a.ClientName,
		ServiceName:     a.ServiceName,
		StartsAt:        a.Interval.Start,
		EndsAt:          a.Interval.End,
		DurationMinutes: a.DurationMinutes(),
		Status:          a.Status.String(),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainFilter строит типизированный фильтр. Неизвестный статус - ошибка
func (r *ListRequest) ToDomainFilter() (domain.AppointmentFilter, error) {
	filter := domain.AppointmentFilter{
		TenantID:       r.TenantID,
		ProfessionalID: r.ProfessionalID,
		ClientID:       r.ClientID,
		From:           r.From,
		To:             r.To,
	}

	if r.Date != nil {
		day := domain.DayBounds(*r.Date)
		filter.From = &day.Start
		filter.To = &day.End
	}

	for _, s := range r.Statuses {
		status, err := domain.ParseBookingStatus(s)
		if err != nil {
			return domain.AppointmentFilter{}, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}
