package check_conflict

import (
	"context"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/engine/conflicts"
)

// Checker проверка кандидата (LocalChecker или RemoteChecker)
type Checker interface {
	Check(ctx context.Context, candidate conflicts.Candidate) (*domain.ConflictVerdict, error)
}

// CatalogRepository интерфейс справочника специалистов и услуг
type CatalogRepository interface {
	GetProfessional(ctx context.Context, tenantID, professionalID int64) (*domain.Professional, error)
	GetService(ctx context.Context, tenantID, serviceID int64) (*domain.Service, error)
}

// Metrics учёт результатов проверки
type Metrics interface {
	ObserveCheck(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
