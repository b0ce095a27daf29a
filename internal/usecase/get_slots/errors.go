package get_slots

import (
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_slots: invalid input data", domain.ErrValidation)

	// ErrProfessionalNotFound возвращается, когда специалист не найден или неактивен
	ErrProfessionalNotFound = fmt.Errorf("%w: get_slots: professional not found", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: get_slots: service not found", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
