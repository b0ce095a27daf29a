package get_slots

import (
	"context"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByProfessionalAndDate(ctx context.Context, tenantID, professionalID int64, date time.Time) ([]*domain.Appointment, error)
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByWeekday(ctx context.Context, tenantID, professionalID int64, weekday time.Weekday) (*domain.WorkingHours, error)
}

// RulesProvider источник действующих правил календаря
type RulesProvider interface {
	GetRules(ctx context.Context, tenantID, professionalID int64) (*domain.CalendarRules, error)
}

// CatalogRepository интерфейс справочника специалистов и услуг
type CatalogRepository interface {
	GetProfessional(ctx context.Context, tenantID, professionalID int64) (*domain.Professional, error)
	GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
