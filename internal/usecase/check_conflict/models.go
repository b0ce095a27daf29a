package check_conflict

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Request модель запроса проверки кандидата.
// Длительность задаётся либо услугой, либо явно в минутах
type Request struct {
	TenantID             int64     `validate:"gt=0"`
	ProfessionalID       int64     `validate:"gt=0"`
	StartsAt             time.Time `validate:"required"`
	ServiceID            *int64    `validate:"omitempty,gt=0"`
	DurationMinutes      *int      `validate:"omitempty,gt=0"`
	ExcludeAppointmentID *int64    `validate:"omitempty,gt=0"` // При переносе - сама переносимая запись
}

// Response модель ответа проверки. Результат рекомендательный
type Response struct {
	Interval domain.TimeInterval
	Verdict  *domain.ConflictVerdict
}
