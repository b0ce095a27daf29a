package delete_schedule_rules

import (
	"errors"
	"net/http"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	"github.com/ddduartediego/BelloProject-sub000/internal/api/middleware"
	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
)

const (
	msgMissingTenantID       = "отсутствует ID арендатора"
	msgInvalidProfessionalID = "некорректный ID специалиста"
	msgNotFound              = "правила не найдены"
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

// Handle DELETE /api/v1/schedule-rules
// и DELETE /api/v1/professionals/{professionalId}/schedule-rules
// После удаления действуют правила уровнем выше
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /schedule-rules - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	professionalID, err := handlers.OptionalPathID(r, "professionalId")
	if err != nil {
		h.logger.Warn("DELETE /schedule-rules - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	if err := h.service.DeleteRules(r.Context(), tenantID, professionalID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("DELETE /schedule-rules - Rules not found: tenant_id=%d, professional_id=%v", tenantID, professionalID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /schedule-rules - Failed to delete rules: tenant_id=%d, error=%v", tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule-rules - Rules deleted: tenant_id=%d, professional_id=%v", tenantID, professionalID)
	w.WriteHeader(http.StatusNoContent)
}
