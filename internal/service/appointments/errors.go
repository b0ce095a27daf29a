package appointments

import (
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointments: appointment not found", domain.ErrNotFound)

	// ErrInvalidInput возвращается при некорректных параметрах фильтра
	ErrInvalidInput = fmt.Errorf("%w: appointments: invalid input data", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments: internal error")
)
