package check_conflict

import (
	"context"
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/engine/conflicts"
	catalogRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/catalog"
	"github.com/ddduartediego/BelloProject-sub000/pkg/metrics"
)

// UseCase use case рекомендательной проверки конфликтов.
// Ничего не блокирует и не записывает
type UseCase struct {
	checker     Checker
	catalogRepo CatalogRepository
	metrics     Metrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(checker Checker, catalogRepo CatalogRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		checker:     checker,
		catalogRepo: catalogRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет проверку кандидата
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем специалиста
	if _, err := uc.catalogRepo.GetProfessional(ctx, req.TenantID, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CheckConflict: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CheckConflict: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Длительность
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	interval, err := domain.NewInterval(req.StartsAt, duration)
	if err != nil {
		return nil, err
	}

	// 4. Проверка
	verdict, err := uc.checker.Check(ctx, conflicts.Candidate{
		TenantID:             req.TenantID,
		ProfessionalID:       req.ProfessionalID,
		Interval:             interval,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		uc.logger.Error("CheckConflict: check failed: %v", err)
		return nil, fmt.Errorf("%w: check failed: %v", ErrInternal, err)
	}

	uc.metrics.ObserveCheck(resultOf(verdict))

	uc.logger.Info("CheckConflict: professional=%d, %s-%s: conflict=%v, warnings=%d",
		req.ProfessionalID, interval.Start.Format(domain.TimeFormat), interval.End.Format(domain.TimeFormat),
		verdict.HasConflict, len(verdict.Warnings))

	return &Response{Interval: interval, Verdict: verdict}, nil
}

// resolveDuration длительность из услуги или из запроса
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, *req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckConflict: service id=%d not found", *req.ServiceID)
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("CheckConflict: failed to get service id=%d: %v", *req.ServiceID, err)
		return 0, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return service.DurationMinutes, nil
}

func resultOf(v *domain.ConflictVerdict) string {
	switch {
	case v.HasConflict:
		return metrics.CheckResultConflict
	case v.HasWarnings():
		return metrics.CheckResultWarning
	default:
		return metrics.CheckResultOK
	}
}
