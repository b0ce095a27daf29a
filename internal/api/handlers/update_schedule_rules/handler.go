package update_schedule_rules

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
	msgInvalidData           = "некорректные данные правил"
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

// Handle PUT /api/v1/schedule-rules
// и PUT /api/v1/professionals/{professionalId}/schedule-rules
// Непереданные поля берутся из действующих правил
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("PUT /schedule-rules - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	professionalID, err := handlers.OptionalPathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("PUT /schedule-rules - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var req models.UpdateRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /schedule-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.TenantID = tenantID
	req.ProfessionalID = professionalID

	result, err := h.service.UpdateRules(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /schedule-rules - Professional not found: professional_id=%v", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("PUT /schedule-rules - Invalid data: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err.Error())

		default:
			h.logger.Error("PUT /schedule-rules - Failed to update rules: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /schedule-rules - Rules updated successfully: tenant_id=%d, rules_id=%d", tenantID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
