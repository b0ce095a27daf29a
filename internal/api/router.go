package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checkConflictHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/check_conflict"
	commitBookingHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/commit_booking"
	deleteScheduleRulesHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/delete_schedule_rules"
	getAppointmentHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_appointment"
	getScheduleRulesHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_schedule_rules"
	getSlotsHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_slots"
	getWorkingHoursHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/list_appointments"
	listClientAppointmentsHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/list_client_appointments"
	replaceWorkingHoursHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/replace_working_hours"
	transitionStatusHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/transition_status"
	updateScheduleRulesHandler "github.com/ddduartediego/BelloProject-sub000/internal/api/handlers/update_schedule_rules"
	"github.com/ddduartediego/BelloProject-sub000/internal/api/middleware"
	"github.com/ddduartediego/BelloProject-sub000/pkg/metrics"
)

// Handlers набор HTTP handlers сервиса
type Handlers struct {
	GetSlots               *getSlotsHandler.Handler
	CheckConflict          *checkConflictHandler.Handler
	CommitBooking          *commitBookingHandler.Handler
	TransitionStatus       *transitionStatusHandler.Handler
	GetAppointment         *getAppointmentHandler.Handler
	ListAppointments       *listAppointmentsHandler.Handler
	ListClientAppointments *listClientAppointmentsHandler.Handler
	GetScheduleRules       *getScheduleRulesHandler.Handler
	UpdateScheduleRules    *updateScheduleRulesHandler.Handler
	DeleteScheduleRules    *deleteScheduleRulesHandler.Handler
	GetWorkingHours        *getWorkingHoursHandler.Handler
	ReplaceWorkingHours    *replaceWorkingHoursHandler.Handler
}

// RouterOptions параметры роутера. Metrics = nil отключает метрики
type RouterOptions struct {
	Metrics     *metrics.Metrics
	MetricsPath string
	Logger      middleware.Logger
}

// NewRouter настраивает маршруты /api/v1
func NewRouter(h Handlers, opts RouterOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	if opts.Logger != nil {
		r.Use(middleware.Logging(opts.Logger))
	}

	// Добавляем metrics middleware (если метрики включены)
	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Все маршруты API требуют X-Tenant-ID
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Tenant)

	// --- Слоты и проверка конфликтов ---
	api.HandleFunc("/professionals/{professionalId:[0-9]+}/slots", h.GetSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/check-conflict", h.CheckConflict.Handle).Methods(http.MethodPost)

	// --- Записи ---
	api.HandleFunc("/appointments", h.CommitBooking.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/appointments", h.ListAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}", h.GetAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}", h.CommitBooking.HandleReschedule).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", h.TransitionStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/clients/{clientId:[0-9]+}/appointments", h.ListClientAppointments.Handle).Methods(http.MethodGet)

	// --- Правила календаря: уровень арендатора и специалиста ---
	api.HandleFunc("/schedule-rules", h.GetScheduleRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule-rules", h.UpdateScheduleRules.Handle).Methods(http.MethodPut)
	api.HandleFunc("/schedule-rules", h.DeleteScheduleRules.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/professionals/{professionalId:[0-9]+}/schedule-rules", h.GetScheduleRules.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId:[0-9]+}/schedule-rules", h.UpdateScheduleRules.Handle).Methods(http.MethodPut)
	api.HandleFunc("/professionals/{professionalId:[0-9]+}/schedule-rules", h.DeleteScheduleRules.Handle).Methods(http.MethodDelete)

	// --- Рабочие часы ---
	api.HandleFunc("/professionals/{professionalId:[0-9]+}/working-hours", h.GetWorkingHours.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{professionalId:[0-9]+}/working-hours", h.ReplaceWorkingHours.Handle).Methods(http.MethodPut)

	return r
}
