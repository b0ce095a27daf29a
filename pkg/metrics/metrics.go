package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Результаты фиксации бронирования
const (
	OutcomeCommitted  = "committed"
	OutcomeConflict   = "conflict"
	OutcomeValidation = "validation"
	OutcomeError      = "error"
)

// Результаты проверки конфликтов
const (
	CheckResultConflict = "conflict"
	CheckResultWarning  = "warning"
	CheckResultOK       = "ok"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingCommitsTotal *prometheus.CounterVec
	ConflictChecksTotal *prometheus.CounterVec
	LockWaitDuration    prometheus.Histogram
}

// New создаёт метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создаёт метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		BookingCommitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_commits_total",
			Help:        "Booking commit attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		ConflictChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "conflict_checks_total",
			Help:        "Advisory conflict checks by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		LockWaitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "booking_lock_wait_seconds",
			Help:        "Time spent waiting for the per-professional booking lock",
			ConstLabels: constLabels,
			Buckets:     []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingCommitsTotal,
		m.ConflictChecksTotal,
		m.LockWaitDuration,
	)

	return m
}

// ObserveCommit учитывает результат фиксации бронирования. Безопасен для nil
func (m *Metrics) ObserveCommit(outcome string) {
	if m == nil {
		return
	}
	m.BookingCommitsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCheck учитывает результат проверки конфликтов. Безопасен для nil
func (m *Metrics) ObserveCheck(result string) {
	if m == nil {
		return
	}
	m.ConflictChecksTotal.WithLabelValues(result).Inc()
}

// ObserveLockWait учитывает время ожидания блокировки. Безопасен для nil
func (m *Metrics) ObserveLockWait(seconds float64) {
	if m == nil {
		return
	}
	m.LockWaitDuration.Observe(seconds)
}
