package commit_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/engine/conflicts"
	"github.com/ddduartediego/BelloProject-sub000/internal/infra/lock"
	appointmentRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/appointment"
	catalogRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/catalog"
	"github.com/ddduartediego/BelloProject-sub000/pkg/metrics"
)

// UseCase use case фиксации записи (создание и перенос).
// Единственная точка, через которую запись попадает в хранилище
type UseCase struct {
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	checker         Checker
	locker          Locker
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	lockTimeout     time.Duration
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// lockTimeout <= 0 - ждать блокировку, пока жив контекст запроса
func NewUseCase(
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	checker Checker,
	locker Locker,
	txManager TransactionManager,
	metrics Metrics,
	lockTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		checker:         checker,
		locker:          locker,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		lockTimeout:     lockTimeout,
		logger:          logger,
	}
}

// Execute выполняет use case фиксации записи.
// Повторная проверка и запись выполняются под блокировкой специалиста
// в сериализуемой транзакции. Автоматических повторов нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveCommit(outcomeOf(err))
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CommitBooking: tenant=%d, professional=%d, client=%d, service=%d, start=%s, edit=%v",
		req.TenantID, req.ProfessionalID, req.ClientID, req.ServiceID, req.StartsAt.Format(time.RFC3339), req.IsEdit())

	// 2. Проверяем специалиста
	if _, err := uc.catalogRepo.GetProfessional(ctx, req.TenantID, req.ProfessionalID); err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			uc.logger.Warn("CommitBooking: professional id=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		uc.logger.Error("CommitBooking: failed to get professional id=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get professional: %v", ErrInternal, err)
	}

	// 3. Получаем услугу, она задаёт длительность
	service, err := uc.catalogRepo.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CommitBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CommitBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Черновик записи
	draft, err := buildDraft(req, service)
	if err != nil {
		uc.logger.Warn("CommitBooking: invalid draft: %v", err)
		return nil, err
	}
	candidate := conflicts.CandidateFromDraft(draft)

	// 5. Блокировка специалиста
	unlock, err := uc.acquire(ctx, draft)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 6. Повторная проверка и запись в сериализуемой транзакции
	var (
		saved    *domain.Appointment
		warnings []string
	)

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Для переноса убеждаемся, что запись существует и ещё активна
		if draft.IsEdit() {
			if err := uc.ensureEditable(txCtx, draft); err != nil {
				return err
			}
		}

		// 6.2. Проверка по последнему зафиксированному состоянию
		verdict, err := uc.checker.Check(txCtx, candidate)
		if err != nil {
			uc.logger.Error("CommitBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if verdict.HasConflict {
			uc.logger.Warn("CommitBooking: professional=%d, %s conflicts with %v",
				draft.ProfessionalID, draft.Interval.Start.Format(domain.TimeFormat), verdict.ConflictIDs())
			return domain.NewConflictError(verdict)
		}
		warnings = verdict.Warnings

		// 6.3. Запись. Хранилище само отклоняет пересечение
		appointment := toAppointment(draft)
		if draft.IsEdit() {
			saved, err = uc.appointmentRepo.RescheduleIfNoConflict(txCtx, appointment)
		} else {
			saved, err = uc.appointmentRepo.CreateIfNoConflict(txCtx, appointment)
		}
		return err
	})

	if err != nil {
		return nil, uc.mapCommitError(ctx, candidate, err)
	}

	uc.logger.Info("CommitBooking: committed appointment id=%d, professional=%d, %s-%s",
		saved.ID, saved.ProfessionalID,
		saved.Interval.Start.Format(domain.TimeFormat), saved.Interval.End.Format(domain.TimeFormat))

	return &Response{
		Appointment: saved,
		Warnings:    warnings,
		Rescheduled: draft.IsEdit(),
	}, nil
}

// acquire берёт блокировку специалиста и учитывает время ожидания
func (uc *UseCase) acquire(ctx context.Context, draft *domain.AppointmentDraft) (func(), error) {
	lockCtx := ctx
	if uc.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, uc.lockTimeout)
		defer cancel()
	}

	started := uc.timeProvider.Now()
	unlock, err := uc.locker.Lock(lockCtx, lock.ProfessionalKey(draft.TenantID, draft.ProfessionalID))
	uc.metrics.ObserveLockWait(uc.timeProvider.Now().Sub(started).Seconds())

	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			uc.logger.Warn("CommitBooking: lock for professional=%d not acquired: %v", draft.ProfessionalID, err)
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, err)
		}
		uc.logger.Error("CommitBooking: lock backend error for professional=%d: %v", draft.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to lock professional: %v", ErrInternal, err)
	}

	return unlock, nil
}

// ensureEditable проверяет, что переносимая запись существует и не завершена
func (uc *UseCase) ensureEditable(ctx context.Context, draft *domain.AppointmentDraft) error {
	current, err := uc.appointmentRepo.GetByID(ctx, draft.TenantID, *draft.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CommitBooking: appointment id=%d not found", *draft.AppointmentID)
			return ErrAppointmentNotFound
		}
		uc.logger.Error("CommitBooking: failed to get appointment id=%d: %v", *draft.AppointmentID, err)
		return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	if current.IsTerminal() {
		uc.logger.Warn("CommitBooking: appointment id=%d is %s", current.ID, current.Status)
		return ErrAppointmentClosed
	}

	return nil
}

// mapCommitError приводит ошибки транзакции к ошибкам use case.
// Пересечение, найденное хранилищем, превращается в ConflictError с новым вердиктом.
// Транзакция к этому моменту уже откатилась, поэтому проверка идёт вне её
func (uc *UseCase) mapCommitError(ctx context.Context, candidate conflicts.Candidate, err error) error {
	var conflictErr *domain.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		return err

	case errors.Is(err, appointmentRepo.ErrOverlap), errors.Is(err, appointmentRepo.ErrSerialization):
		uc.logger.Warn("CommitBooking: storage rejected professional=%d, %s: %v",
			candidate.ProfessionalID, candidate.Interval.Start.Format(domain.TimeFormat), err)

		verdict, checkErr := uc.checker.Check(ctx, candidate)
		if checkErr != nil {
			uc.logger.Error("CommitBooking: failed to recompute verdict: %v", checkErr)
			verdict = nil
		}

		// Сериализационная ошибка без реального пересечения - это сбой, а не конфликт
		if errors.Is(err, appointmentRepo.ErrSerialization) && (verdict == nil || !verdict.HasConflict) {
			return fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return domain.NewConflictError(verdict)

	case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
		// Запись стала терминальной между чтением и обновлением
		return ErrAppointmentClosed

	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound), errors.Is(err, ErrInternal):
		return err

	default:
		uc.logger.Error("CommitBooking: failed to commit: %v", err)
		return fmt.Errorf("%w: failed to commit: %v", ErrInternal, err)
	}
}

// outcomeOf метка результата для метрик
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeCommitted
	case errors.Is(err, domain.ErrConflict):
		return metrics.OutcomeConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeValidation
	default:
		return metrics.OutcomeError
	}
}
