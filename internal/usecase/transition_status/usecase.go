package transition_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	appointmentRepo "github.com/ddduartediego/BelloProject-sub000/internal/infra/storage/appointment"
)

// UseCase use case смены статуса записи.
// Единственный путь изменения статуса
type UseCase struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute переводит запись в новый статус по таблице переходов.
// Запись в хранилище выполняется как compare-and-set по текущему статусу,
// поэтому из двух одновременных переходов применится только один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	to, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("TransitionStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("TransitionStatus: tenant=%d, appointment=%d, to=%s", req.TenantID, req.AppointmentID, to)

	// 2. Текущее состояние
	current, err := uc.appointmentRepo.GetByID(ctx, req.TenantID, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("TransitionStatus: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("TransitionStatus: failed to get appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 3. Проверка по таблице переходов
	from := current.Status
	if err := domain.Transition(from, to); err != nil {
		uc.logger.Warn("TransitionStatus: appointment id=%d: %v", req.AppointmentID, err)
		return nil, err
	}

	// 4. Compare-and-set
	updated, err := uc.appointmentRepo.UpdateStatus(ctx, req.TenantID, req.AppointmentID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrStatusMismatch):
			// Статус успел измениться, переход уже не из from
			uc.logger.Warn("TransitionStatus: appointment id=%d changed concurrently", req.AppointmentID)
			return nil, uc.concurrentTransitionError(ctx, req, from, to)
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		default:
			uc.logger.Error("TransitionStatus: failed to update appointment id=%d: %v", req.AppointmentID, err)
			return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("TransitionStatus: appointment id=%d %s -> %s", updated.ID, from, updated.Status)
	return &Response{Appointment: updated, From: from}, nil
}

// concurrentTransitionError строит ошибку перехода от фактического текущего статуса
func (uc *UseCase) concurrentTransitionError(ctx context.Context, req *Request, from, to domain.BookingStatus) error {
	latest, err := uc.appointmentRepo.GetByID(ctx, req.TenantID, req.AppointmentID)
	if err == nil {
		from = latest.Status
	}

	if transitionErr := domain.Transition(from, to); transitionErr != nil {
		return transitionErr
	}
	return fmt.Errorf("%w: appointment changed concurrently, now %s", domain.ErrInvalidTransition, from)
}
