package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/barbershop-booking/internal/api/handlers/admin_auth"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/cancel_appointment"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/create_appointment"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/get_appointment"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/get_calendar_days"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/get_customer_appointments"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/get_day_slots"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/get_services"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/list_appointments"
	"github.com/m04kA/barbershop-booking/internal/api/handlers/reschedule_appointment"
	"github.com/m04kA/barbershop-booking/internal/api/middleware"
	"github.com/m04kA/barbershop-booking/internal/ratelimit"
	"github.com/m04kA/barbershop-booking/internal/service/appointments"
	"github.com/m04kA/barbershop-booking/internal/service/availability"
	"github.com/m04kA/barbershop-booking/internal/service/catalog"
	"github.com/m04kA/barbershop-booking/pkg/logger"
	"github.com/m04kA/barbershop-booking/pkg/metrics"
)

// TimeProvider источник текущего времени для обработчиков доступности
type TimeProvider interface {
	Now() time.Time
}

// Deps зависимости HTTP слоя
type Deps struct {
	Catalog        *catalog.Service
	Availability   *availability.Service
	Appointments   *appointments.Service
	AdminGate      *middleware.AdminGate
	BookingLimiter ratelimit.Limiter
	Clock          TimeProvider
	Logger         *logger.Logger

	// Metrics и MetricsHandler могут быть nil, если метрики выключены
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
	MetricsPath    string

	CORSOrigins   []string
	ClientIPs     *middleware.ClientIPResolver
	ThrottleRPS   float64
	ThrottleBurst int
}

// NewRouter собирает маршруты API. CORS оборачивает роутер целиком,
// иначе mux ответит 405 на preflight до вызова middleware.
func NewRouter(d Deps) http.Handler {
	log := d.Logger

	var limitRecorder middleware.RateLimitRecorder
	if d.Metrics != nil {
		limitRecorder = d.Metrics
	}

	getServices := get_services.NewHandler(d.Catalog, log)
	getCalendarDays := get_calendar_days.NewHandler(d.Availability, d.Clock, log)
	getDaySlots := get_day_slots.NewHandler(d.Availability, d.Clock, log)
	createAppointment := create_appointment.NewHandler(d.Appointments, log)
	getAppointment := get_appointment.NewHandler(d.Appointments, log)
	getCustomerAppointments := get_customer_appointments.NewHandler(d.Appointments, log)
	cancelAppointment := cancel_appointment.NewHandler(d.Appointments, log)
	listAppointments := list_appointments.NewHandler(d.Appointments, log)
	rescheduleAppointment := reschedule_appointment.NewHandler(d.Appointments, log)
	adminAuth := admin_auth.NewHandler(d.AdminGate, log)

	r := mux.NewRouter()

	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	if d.MetricsHandler != nil && d.MetricsPath != "" {
		r.Handle(d.MetricsPath, d.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	if d.ThrottleRPS > 0 {
		api.Use(middleware.Throttle(d.ThrottleRPS, d.ThrottleBurst, limitRecorder))
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/days", getCalendarDays.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/slots", getDaySlots.Handle).Methods(http.MethodGet)

	api.HandleFunc("/appointments", getCustomerAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)

	// Идентификатор записи является токеном отмены из письма
	api.HandleFunc("/appointments/{id}", cancelAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/cancel", cancelAppointment.HandleLink).Methods(http.MethodGet)

	api.HandleFunc("/admin/auth", adminAuth.Handle).Methods(http.MethodPost)

	// Создание записи с лимитом попыток на клиента
	var create http.Handler = http.HandlerFunc(createAppointment.Handle)
	if d.BookingLimiter != nil {
		create = middleware.BookingRateLimit(d.BookingLimiter, d.ClientIPs, limitRecorder, log)(create)
	}
	api.Handle("/appointments", create).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Password)
	// ============================================================

	admin := api.PathPrefix("/admin/appointments").Subrouter()
	admin.Use(d.AdminGate.Middleware)

	admin.HandleFunc("", listAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("", rescheduleAppointment.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/{id}", cancelAppointment.Handle).Methods(http.MethodDelete)

	return middleware.CORS(d.CORSOrigins)(r)
}
