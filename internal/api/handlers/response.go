package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ddduartediego/BelloProject-sub000/internal/domain"
	"github.com/ddduartediego/BelloProject-sub000/internal/service/appointments/models"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// VerdictResponse результат проверки конфликтов
type VerdictResponse struct {
	HasConflict bool                         `json:"hasConflict"`
	Conflicts   []models.AppointmentResponse `json:"conflicts"`
	Warnings    []string                     `json:"warnings"`
	Suggestion  *time.Time                   `json:"suggestion,omitempty"`
}

// ConflictResponse тело ответа 409
type ConflictResponse struct {
	Error   string          `json:"error"`
	Verdict VerdictResponse `json:"verdict"`
}

// FromDomainVerdict конвертирует вердикт в HTTP модель. nil-срезы заменяются пустыми
func FromDomainVerdict(v *domain.ConflictVerdict) VerdictResponse {
	resp := VerdictResponse{
		Conflicts: []models.AppointmentResponse{},
		Warnings:  []string{},
	}
	if v == nil {
		return resp
	}

	resp.HasConflict = v.HasConflict
	resp.Suggestion = v.Suggestion
	for _, c := range v.Conflicts {
		if item := models.FromDomainAppointment(c); item != nil {
			resp.Conflicts = append(resp.Conflicts, *item)
		}
	}
	resp.Warnings = append(resp.Warnings, v.Warnings...)

	return resp
}

// RespondJSON пишет data в формате JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError пишет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorDetails пишет ошибку с деталями (например, текст ошибки валидации)
func RespondErrorDetails(w http.ResponseWriter, status int, message, details string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Details: details})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondUnprocessable(w http.ResponseWriter, message, details string) {
	RespondErrorDetails(w, http.StatusUnprocessableEntity, message, details)
}

func RespondServiceUnavailable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusServiceUnavailable, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondConflict пишет 409 с вердиктом, конфликтующими записями и предложенным временем
func RespondConflict(w http.ResponseWriter, message string, verdict *domain.ConflictVerdict) {
	RespondJSON(w, http.StatusConflict, ConflictResponse{
		Error:   message,
		Verdict: FromDomainVerdict(verdict),
	})
}
