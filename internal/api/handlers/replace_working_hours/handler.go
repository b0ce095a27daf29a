package replace_working_hours

import (
	"errors"
	"net/http"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	"github.com/ddduartediego/BelloProject-sub000/internal/api/middleware"
	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/service/schedule/models"
)

const (
	msgMissingTenantID       = "отсутствует ID арендатора"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidData           = "некорректное расписание"
	msgProfessionalNotFound  = "специалист не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/professionals/{professionalId}/working-hours
// Заменяет неделю целиком, дни без записи становятся выходными
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /professionals/{id}/working-hours - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	professionalID, err := handlers.PathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("PUT /professionals/{id}/working-hours - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req models.ReplaceWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /professionals/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.ProfessionalID = professionalID

	week, err := h.service.ReplaceWorkingHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /professionals/{id}/working-hours - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /professionals/{id}/working-hours - Invalid data: professional_id=%d, error=%v", professionalID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err.Error())

		default:
			h.logger.Error("PUT /professionals/{id}/working-hours - Failed to replace working hours: professional_id=%d, error=%v",
				professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /professionals/{id}/working-hours - Working hours replaced: professional_id=%d, days=%d",
		professionalID, len(week.Days))
	handlers.RespondJSON(w, http.StatusOK, week)
}
