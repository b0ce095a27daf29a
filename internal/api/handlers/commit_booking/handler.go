package commit_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	"github.com/ddduartediego/BelloProject-sub000/internal/api/middleware"
	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	commitBooking "github.com/ddduartediego/BelloProject-sub000/internal/usecase/commit_booking"
)

const (
	msgMissingTenantID      = "отсутствует ID арендатора"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidData          = "некорректные данные записи"
	msgSlotNotAvailable     = "выбранное время пересекается с другой записью"
	msgAppointmentNotFound  = "запись не найдена"
	msgProfessionalNotFound = "специалист не найден"
	msgAppointmentClosed    = "запись завершена или отменена"
	msgProfessionalIsBusy   = "специалист занят другой операцией, повторите запрос"
)

type Handler struct {
	useCase  CommitBookingUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создаёт handler. startsAt переводится в часовой пояс салона location
func NewHandler(useCase CommitBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// HandleCreate POST /api/v1/appointments
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "POST /appointments", nil, http.StatusCreated)
}

// HandleReschedule PUT /api/v1/appointments/{appointmentId}
func (h *Handler) HandleReschedule(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PUT /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	h.handle(w, r, "PUT /appointments/{id}", &appointmentID, http.StatusOK)
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, appointmentID *int64, successStatus int) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing tenant ID", route)
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	var req CommitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, appointmentID, h.location))
	if err != nil {
		var conflictErr *domain.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("%s - Conflict: professional_id=%d, start=%s, conflicts=%v",
				route, req.ProfessionalID, req.StartsAt, conflictErr.Verdict.ConflictIDs())
			handlers.RespondConflict(w, msgSlotNotAvailable, conflictErr.Verdict)

		case errors.Is(err, commitBooking.ErrLockTimeout):
			h.logger.Warn("%s - Lock timeout: professional_id=%d", route, req.ProfessionalID)
			handlers.RespondServiceUnavailable(w, msgProfessionalIsBusy)

		case errors.Is(err, commitBooking.ErrAppointmentClosed):
			h.logger.Warn("%s - Appointment closed: appointment_id=%v", route, appointmentID)
			handlers.RespondUnprocessable(w, msgAppointmentClosed, err.Error())

		case errors.Is(err, commitBooking.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: appointment_id=%v", route, appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, commitBooking.ErrProfessionalNotFound):
			h.logger.Warn("%s - Professional not found: professional_id=%d", route, req.ProfessionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("%s - Invalid data: professional_id=%d, error=%v", route, req.ProfessionalID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err.Error())

		default:
			h.logger.Error("%s - Failed to commit appointment: professional_id=%d, client_id=%d, error=%v",
				route, req.ProfessionalID, req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Appointment committed: appointment_id=%d, professional_id=%d, warnings=%d",
		route, result.Appointment.ID, result.Appointment.ProfessionalID, len(result.Warnings))
	handlers.RespondJSON(w, successStatus, FromUseCaseResponse(result))
}
