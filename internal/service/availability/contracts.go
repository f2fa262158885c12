package availability

import (
	"context"

	"github.com/m04kA/barbershop-booking/internal/domain"
)

// AppointmentReader источник текущего списка записей
type AppointmentReader interface {
	ReadAll(ctx context.Context) ([]domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
