package check_conflict

import (
	"fmt"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/pkg/validation"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.StartsAt.IsZero() {
		return fmt.Errorf("%w: startsAt is required", ErrInvalidInput)
	}

	if (req.ServiceID == nil) == (req.DurationMinutes == nil) {
		return fmt.Errorf("%w: exactly one of serviceId and durationMinutes is required", ErrInvalidInput)
	}

	// Границы длительности общие с услугами справочника
	if req.DurationMinutes != nil {
		d := *req.DurationMinutes
		if d < domain.MinServiceDurationMinutes || d > domain.MaxServiceDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
		}
	}

	return nil
}
