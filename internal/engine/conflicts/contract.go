package conflicts

import (
	"context"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Checker проверка кандидата на конфликты.
// Реализации: LocalChecker (список записей в памяти) и RemoteChecker (репозиторий)
type Checker interface {
	Check(ctx context.Context, candidate Candidate) (*domain.ConflictVerdict, error)
}

// AppointmentReader источник записей специалиста за день
type AppointmentReader interface {
	ListByProfessionalAndDate(ctx context.Context, tenantID, professionalID int64, date time.Time) ([]*domain.Appointment, error)
}

// RulesProvider источник правил календаря специалиста
type RulesProvider interface {
	GetRules(ctx context.Context, tenantID, professionalID int64) (*domain.CalendarRules, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
