package appointments

import (
	"context"
	"time"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/infra/storage/appointment"
	"github.com/m04kA/barbershop-booking/internal/validation"
)

// AppointmentStore хранилище записей с атомарной мутацией
type AppointmentStore interface {
	ReadAll(ctx context.Context) ([]domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Appointment, error)
	Update(ctx context.Context, fn appointment.Mutation) error
}

// Validator проверка входных данных
type Validator interface {
	ValidateBooking(in validation.BookingInput, now time.Time) (*validation.Booking, error)
	ValidateReschedule(in validation.RescheduleInput, now time.Time) (*validation.Reschedule, error)
}

// Notifier уведомления клиента. Ошибки не влияют на результат операции.
type Notifier interface {
	AppointmentBooked(ctx context.Context, a domain.Appointment) error
	AppointmentCancelled(ctx context.Context, a domain.Appointment) error
}

// MetricsRecorder доменные метрики
type MetricsRecorder interface {
	AppointmentCreated()
	AppointmentCancelled()
	AppointmentRescheduled()
	SlotConflict()
	AppointmentsPurged(n int)
	NotificationFailed(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopNotifier struct{}

func (nopNotifier) AppointmentBooked(context.Context, domain.Appointment) error    { return nil }
func (nopNotifier) AppointmentCancelled(context.Context, domain.Appointment) error { return nil }

type nopMetrics struct{}

func (nopMetrics) AppointmentCreated()       {}
func (nopMetrics) AppointmentCancelled()     {}
func (nopMetrics) AppointmentRescheduled()   {}
func (nopMetrics) SlotConflict()             {}
func (nopMetrics) AppointmentsPurged(int)    {}
func (nopMetrics) NotificationFailed(string) {}
