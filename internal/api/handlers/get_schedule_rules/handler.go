package get_schedule_rules

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

// Handle GET /api/v1/schedule-rules
// и GET /api/v1/professionals/{professionalId}/schedule-rules
// Возвращает действующие правила с указанием уровня (professional, tenant, default)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("GET /schedule-rules - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	professionalID, err := handlers.OptionalPathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("GET /schedule-rules - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	var rules *models.RulesResponse
	if professionalID != nil {
		rules, err = h.service.GetRulesForProfessional(r.Context(), tenantID, *professionalID)
	} else {
		rules, err = h.service.GetTenantRules(r.Context(), tenantID)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /schedule-rules - Professional not found: professional_id=%v", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /schedule-rules - Failed to get rules: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule-rules - Rules retrieved successfully: tenant_id=%d, level=%s", tenantID, rules.Level)
	handlers.RespondJSON(w, http.StatusOK, rules)
}
