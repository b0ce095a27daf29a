package transition_status

import "github.com/ddduartediego/BelloProject-sub000/internal/domain"

// Request модель запроса смены статуса
type Request struct {
	TenantID      int64  `validate:"gt=0"`
	AppointmentID int64  `validate:"gt=0"`
	Status        string `validate:"required"` // Требуемый статус, проверяется ParseBookingStatus
}

// Response модель ответа со статусом до и после перехода
type Response struct {
	Appointment *domain.Appointment
	From        domain.BookingStatus
}
