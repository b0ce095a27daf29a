package commit_booking

import (
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: commit_booking: invalid input data", domain.ErrValidation)

	// ErrProfessionalNotFound возвращается, когда специалист не найден или неактивен
	ErrProfessionalNotFound = fmt.Errorf("%w: commit_booking: professional not found", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: commit_booking: service not found", domain.ErrValidation)

	// ErrAppointmentNotFound возвращается, когда редактируемая запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: commit_booking: appointment not found", domain.ErrNotFound)

	// ErrAppointmentClosed возвращается при попытке перенести завершённую или отменённую запись
	ErrAppointmentClosed = fmt.Errorf("%w: commit_booking: appointment is completed or cancelled", domain.ErrValidation)

	// ErrLockTimeout возвращается, когда не удалось дождаться блокировки специалиста
	ErrLockTimeout = errors.New("commit_booking: professional is busy, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("commit_booking: internal error")
)
