package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	appointmentsCreated     prometheus.Counter
	appointmentsCancelled   prometheus.Counter
	appointmentsRescheduled prometheus.Counter
	appointmentsPurged      prometheus.Counter
	slotConflicts           prometheus.Counter
	rateLimited             *prometheus.CounterVec
	notificationsFailed     *prometheus.CounterVec

	dbOpenConnections *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec
	dbWaitDuration    *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (в тестах prometheus.NewRegistry())
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		appointmentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointments successfully booked",
			ConstLabels: labels,
		}),
		appointmentsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_cancelled_total",
			Help:        "Appointments moved to cancelled",
			ConstLabels: labels,
		}),
		appointmentsRescheduled: factory.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_rescheduled_total",
			Help:        "Appointments moved to another slot",
			ConstLabels: labels,
		}),
		appointmentsPurged: factory.NewCounter(prometheus.CounterOpts{
			Name:        "appointments_purged_total",
			Help:        "Expired appointments hard-deleted",
			ConstLabels: labels,
		}),
		slotConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name:        "slot_conflicts_total",
			Help:        "Create or reschedule attempts rejected because the slot was taken",
			ConstLabels: labels,
		}),
		rateLimited: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "rate_limited_total",
			Help:        "Requests rejected by admission control",
			ConstLabels: labels,
		}, []string{"scope"}),
		notificationsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Best-effort notifications that could not be delivered",
			ConstLabels: labels,
		}, []string{"kind"}),

		dbOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the database pool by state",
			ConstLabels: labels,
		}, []string{"state"}),
		dbWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}, []string{"pool"}),
		dbWaitDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: labels,
		}, []string{"pool"}),
	}
}

// ObserveHTTPRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) AppointmentCreated()     { m.appointmentsCreated.Inc() }
func (m *Metrics) AppointmentCancelled()   { m.appointmentsCancelled.Inc() }
func (m *Metrics) AppointmentRescheduled() { m.appointmentsRescheduled.Inc() }
func (m *Metrics) SlotConflict()           { m.slotConflicts.Inc() }

func (m *Metrics) AppointmentsPurged(n int) {
	if n > 0 {
		m.appointmentsPurged.Add(float64(n))
	}
}

func (m *Metrics) RateLimited(scope string) {
	m.rateLimited.WithLabelValues(scope).Inc()
}

func (m *Metrics) NotificationFailed(kind string) {
	m.notificationsFailed.WithLabelValues(kind).Inc()
}

// SetDBPoolStats обновляет метрики пула соединений
func (m *Metrics) SetDBPoolStats(pool string, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	m.dbOpenConnections.WithLabelValues("in_use").Set(float64(inUse))
	m.dbOpenConnections.WithLabelValues("idle").Set(float64(idle))
	m.dbWaitCount.WithLabelValues(pool).Set(float64(waitCount))
	m.dbWaitDuration.WithLabelValues(pool).Set(waitDuration.Seconds())
}
