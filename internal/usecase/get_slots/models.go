package get_slots

import (
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

// Request модель запроса сетки слотов.
// Длительность задаётся либо услугой, либо явно в минутах
type Request struct {
	TenantID        int64     `validate:"gt=0"`
	ProfessionalID  int64     `validate:"gt=0"`
	Date            time.Time `validate:"required"` // День, время суток не учитывается
	ServiceID       *int64    `validate:"omitempty,gt=0"`
	DurationMinutes *int      `validate:"omitempty,gt=0"`
}

// Response модель ответа с сеткой слотов
type Response struct {
	Date               time.Time
	ProfessionalID     int64
	DurationMinutes    int
	GranularityMinutes int
	WorkingDay         bool          // false - у специалиста выходной, Slots пустой
	Slots              []domain.Slot // В хронологическом порядке
}
