package commit_booking

import (
	"context"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/engine/conflicts"
)

// AppointmentRepository интерфейс репозитория записей.
// Запись с пересечением отклоняется самим хранилищем (ErrOverlap)
type AppointmentRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Appointment, error)
	CreateIfNoConflict(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	RescheduleIfNoConflict(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// CatalogRepository интерфейс справочника специалистов и услуг
type CatalogRepository interface {
	GetProfessional(ctx context.Context, tenantID, professionalID int64) (*domain.Professional, error)
	GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// Checker проверка кандидата по актуальному состоянию хранилища
type Checker interface {
	Check(ctx context.Context, candidate conflicts.Candidate) (*domain.ConflictVerdict, error)
}

// Locker блокировка записи к специалисту.
// Возвращённую функцию нужно вызвать для освобождения
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics учёт результатов фиксации
type Metrics interface {
	ObserveCommit(outcome string)
	ObserveLockWait(seconds float64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
