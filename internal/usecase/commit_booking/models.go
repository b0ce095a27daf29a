package commit_booking

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Request модель запроса на фиксацию записи.
// AppointmentID = nil создаёт новую запись, иначе переносит существующую
type Request struct {
	TenantID       int64     `validate:"gt=0"`
	ProfessionalID int64     `validate:"gt=0"`
	ClientID       int64     `validate:"gt=0"`
	ServiceID      int64     `validate:"gt=0"`
	AppointmentID  *int64    `validate:"omitempty,gt=0"`
	StartsAt       time.Time `validate:"required"`
	ClientName     string    `validate:"max=120"`
	Notes          *string   `validate:"omitempty,max=500"`
}

// IsEdit возвращает true, если запрос переносит существующую запись
func (r *Request) IsEdit() bool {
	return r.AppointmentID != nil
}

// Response модель ответа с зафиксированной записью
type Response struct {
	Appointment *domain.Appointment // Сохранённая запись
	Warnings    []string            // Предупреждения о близких записях, не мешают фиксации
	Rescheduled bool                // true - перенос существующей записи
}
