package schedule

import (
	"context"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// RulesRepository интерфейс репозитория правил календаря
type RulesRepository interface {
	GetByTenantAndProfessional(ctx context.Context, tenantID int64, professionalID *int64) (*domain.CalendarRules, error)
	GetRulesWithHierarchy(ctx context.Context, tenantID, professionalID int64) (*domain.CalendarRules, error)
	Upsert(ctx context.Context, rules *domain.CalendarRules) (*domain.CalendarRules, error)
	Delete(ctx context.Context, tenantID int64, professionalID *int64) error
}

// WorkingHoursRepository интерфейс репозитория рабочих часов
type WorkingHoursRepository interface {
	GetByWeekday(ctx context.Context, tenantID, professionalID int64, weekday time.Weekday) (*domain.WorkingHours, error)
	ListByProfessional(ctx context.Context, tenantID, professionalID int64) (domain.WeeklySchedule, error)
	ReplaceWeek(ctx context.Context, tenantID, professionalID int64, schedule domain.WeeklySchedule) error
}

// CatalogRepository интерфейс справочника специалистов
type CatalogRepository interface {
	GetProfessional(ctx context.Context, tenantID, professionalID int64) (*domain.Professional, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
