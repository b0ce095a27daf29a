package schedule

import (
	"errors"
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

var (
	// ErrProfessionalNotFound возвращается, когда специалист не найден или неактивен
	ErrProfessionalNotFound = fmt.Errorf("%w: schedule: professional not found", domain.ErrNotFound)

	// ErrRulesNotFound возвращается при удалении несуществующих правил
	ErrRulesNotFound = fmt.Errorf("%w: schedule: rules not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
