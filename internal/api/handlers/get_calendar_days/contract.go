package get_calendar_days

import (
	"context"
	"time"

	"github.com/m04kA/barbershop-booking/internal/service/availability/models"
)

type AvailabilityService interface {
	Days(ctx context.Context, now time.Time) ([]models.Day, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
