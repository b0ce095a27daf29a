package get_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	"github.com/ddduartediego/BelloProject-sub000/internal/api/middleware"
	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	getSlots "github.com/ddduartediego/BelloProject-sub000/internal/usecase/get_slots"
)

const (
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgMissingTenantID       = "отсутствует ID арендатора"
	msgMissingDate           = "дата обязательна"
	msgInvalidParams         = "некорректные параметры запроса"
	msgInvalidData           = "некорректные данные запроса"
	msgProfessionalNotFound  = "специалист не найден"
)

type Handler struct {
	useCase  GetSlotsUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создаёт handler. Даты из запроса трактуются в часовом поясе location
func NewHandler(useCase GetSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/professionals/{professionalId}/slots
// Query params: date (required, YYYY-MM-DD), serviceId или durationMinutes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /professionals/{id}/slots - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	date, err := handlers.QueryDate(r, "date", h.location)
	if err != nil || date == nil {
		h.logger.Warn("GET /professionals/{id}/slots - Missing or invalid date: %v", err)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	serviceID, err := handlers.QueryID(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	duration, err := handlers.QueryInt(r, "durationMinutes")
	if err != nil {
		h.logger.Warn("GET /professionals/{id}/slots - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		TenantID:        tenantID,
		ProfessionalID:  professionalID,
		Date:            *date,
		ServiceID:       serviceID,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /professionals/{id}/slots - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("GET /professionals/{id}/slots - Invalid data: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err.Error())

		default:
			h.logger.Error("GET /professionals/{id}/slots - Failed to get slots: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /professionals/{id}/slots - Slots retrieved successfully: professional_id=%d, date=%s, slots_count=%d",
		professionalID, date.Format(domain.DateFormat), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
