package availability

import (
	"time"

	"github.com/m04kA/barbershop-booking/internal/calendar"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// SlotTaken true, если в списке есть активная запись на (date, t), кроме exceptID
func SlotTaken(list []domain.Appointment, date types.Date, t types.TimeString, exceptID string) bool {
	for i := range list {
		if list[i].ID == exceptID && exceptID != "" {
			continue
		}
		if list[i].Occupies(date, t) {
			return true
		}
	}
	return false
}

// FreeSlots слоты дня, допустимые календарём и не занятые активными записями
func FreeSlots(cal *calendar.Calendar, list []domain.Appointment, date types.Date, now time.Time) []types.TimeString {
	taken := make(map[int]struct{})
	for i := range list {
		if list[i].IsActive() && list[i].Date.Equal(date) {
			taken[list[i].Time.Minutes()] = struct{}{}
		}
	}

	free := make([]types.TimeString, 0)
	for _, t := range cal.BookableSlots(date, now) {
		if _, ok := taken[t.Minutes()]; ok {
			continue
		}
		free = append(free, t)
	}
	return free
}
