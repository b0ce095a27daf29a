package slots

import (
	"fmt"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Request входные данные генератора слотов
type Request struct {
	Date                   time.Time            // День (время суток игнорируется)
	ProfessionalID         int64                // Специалист, для которого строится сетка
	WorkingHours           *domain.WorkingHours // nil - специалист в этот день не работает
	ServiceDurationMinutes int                  // Длительность услуги
	GranularityMinutes     int                  // Шаг сетки (15, 30, 60)
	ProximityMinutes       int                  // Порог "слишком близко" между началами
	Existing               []*domain.Appointment
}

// Generate строит сетку слотов на день.
// Чистая функция: без ввода-вывода и без текущего времени.
//
// Приоритет причин для одного слота: break > occupied > tooClose.
// tooClose не делает слот недоступным, это только предупреждение.
func Generate(req Request) ([]domain.Slot, error) {
	// 1. Валидация параметров
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Выходной день
	if req.WorkingHours == nil {
		return []domain.Slot{}, nil
	}

	window, err := req.WorkingHours.WindowOn(req.Date)
	if err != nil {
		return nil, err
	}
	breakInterval, err := req.WorkingHours.BreakOn(req.Date)
	if err != nil {
		return nil, err
	}

	// 3. Оставляем только активные записи этого специалиста
	busy := activeFor(req.ProfessionalID, req.Existing)

	duration := time.Duration(req.ServiceDurationMinutes) * time.Minute
	step := time.Duration(req.GranularityMinutes) * time.Minute
	proximity := float64(req.ProximityMinutes)
	loc := req.Date.Location()

	// 4. Перебираем кандидатов, пока услуга помещается в рабочее окно
	result := make([]domain.Slot, 0, int(window.Duration()/step)+1)
	for start := window.Start; !start.Add(duration).After(window.End); start = start.Add(step) {
		candidate := domain.TimeInterval{Start: start, End: start.Add(duration)}
		result = append(result, classify(candidate, breakInterval, busy, proximity, loc))
	}

	return result, nil
}

// classify определяет доступность одного слота
func classify(
	candidate domain.TimeInterval,
	breakInterval *domain.TimeInterval,
	busy []*domain.Appointment,
	proximity float64,
	loc *time.Location,
) domain.Slot {
	slot := domain.Slot{Start: candidate.Start, Available: true}

	if breakInterval != nil && domain.Overlaps(candidate, *breakInterval) {
		slot.Available = false
		slot.Reason = domain.SlotReasonBreak
		slot.Detail = fmt.Sprintf("break %s-%s",
			breakInterval.Start.In(loc).Format(domain.TimeFormat), breakInterval.End.In(loc).Format(domain.TimeFormat))
		return slot
	}

	for _, a := range busy {
		if domain.Overlaps(candidate, a.Interval) {
			slot.Available = false
			slot.Reason = domain.SlotReasonOccupied
			slot.Detail = fmt.Sprintf("occupied by appointment %d (%s-%s)", a.ID,
				a.Interval.Start.In(loc).Format(domain.TimeFormat), a.Interval.End.In(loc).Format(domain.TimeFormat))
			return slot
		}
	}

	for _, a := range busy {
		if domain.ProximityMinutes(candidate, a.Interval) < proximity {
			slot.Reason = domain.SlotReasonTooClose
			slot.Detail = fmt.Sprintf("starts close to appointment %d at %s", a.ID,
				a.Interval.Start.In(loc).Format(domain.TimeFormat))
			return slot
		}
	}

	return slot
}

func activeFor(professionalID int64, existing []*domain.Appointment) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(existing))
	for _, a := range existing {
		if a == nil || a.ProfessionalID != professionalID || !a.IsActive() {
			continue
		}
		result = append(result, a)
	}
	return result
}

func validateRequest(req Request) error {
	if req.ServiceDurationMinutes <= 0 {
		return domain.NewValidationError("service duration must be positive, got %d", req.ServiceDurationMinutes)
	}
	if !domain.IsSupportedGranularity(req.GranularityMinutes) {
		return domain.NewValidationError("granularity must be one of %v, got %d",
			domain.SupportedGranularities, req.GranularityMinutes)
	}
	if req.ProximityMinutes < 0 {
		return domain.NewValidationError("proximity must not be negative")
	}
	if req.Date.IsZero() {
		return domain.NewValidationError("date is required")
	}
	if req.WorkingHours != nil {
		if err := req.WorkingHours.Validate(); err != nil {
			return err
		}
	}
	return nil
}
