package get_day_slots

import (
	"context"
	"time"

	"github.com/m04kA/barbershop-booking/internal/service/availability/models"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

type AvailabilityService interface {
	AvailableSlotsForDay(ctx context.Context, date types.Date, now time.Time) (*models.DaySlots, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
