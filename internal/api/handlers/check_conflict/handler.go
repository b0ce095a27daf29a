package check_conflict

import (
	"errors"
	"net/http"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/api/handlers"
	"github.com/ddduartediego/BelloProject-sub000/internal/api/middleware"
	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	checkConflict "github.com/ddduartediego/BelloProject-sub000/internal/usecase/check_conflict"
)

const (
	msgMissingTenantID    = "отсутствует ID арендатора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные запроса"
	msgNotFound           = "специалист или услуга не найдены"
)

type Handler struct {
	useCase  CheckConflictUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создаёт handler. startsAt переводится в часовой пояс салона location
func NewHandler(useCase CheckConflictUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments/check-conflict
// Проверка рекомендательная: конфликт возвращается с кодом 200
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.GetTenantID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/check-conflict - Missing tenant ID")
		handlers.RespondBadRequest(w, msgMissingTenantID)
		return
	}

	var req CheckConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/check-conflict - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, h.location))
	if err != nil {
		switch {
		case errors.Is(err, checkConflict.ErrProfessionalNotFound), errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /appointments/check-conflict - Not found: professional_id=%d, error=%v", req.ProfessionalID, err)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("POST /appointments/check-conflict - Invalid data: professional_id=%d, error=%v", req.ProfessionalID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidData, err.Error())

		default:
			h.logger.Error("POST /appointments/check-conflict - Failed to check: professional_id=%d, error=%v",
				req.ProfessionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/check-conflict - Checked: professional_id=%d, conflict=%v, warnings=%d",
		req.ProfessionalID, result.Verdict.HasConflict, len(result.Verdict.Warnings))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
