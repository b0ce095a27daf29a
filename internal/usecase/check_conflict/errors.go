package check_conflict

import (
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: check_conflict: invalid input data", domain.ErrValidation)

	// ErrProfessionalNotFound возвращается, когда специалист не найден или неактивен
	ErrProfessionalNotFound = fmt.Errorf("%w: check_conflict: professional not found", domain.ErrValidation)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: check_conflict: service not found", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflict: internal error")
)
