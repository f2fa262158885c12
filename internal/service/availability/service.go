package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/barbershop-booking/internal/calendar"
	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/internal/service/availability/models"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Service вычисляет свободные слоты по свежему снимку хранилища
type Service struct {
	store    AppointmentReader
	calendar *calendar.Calendar
	logger   Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(store AppointmentReader, cal *calendar.Calendar, logger Logger) *Service {
	return &Service{
		store:    store,
		calendar: cal,
		logger:   logger,
	}
}

// IsSlotTaken true, если на слот есть активная запись
func (s *Service) IsSlotTaken(ctx context.Context, date types.Date, t types.TimeString) (bool, error) {
	list, err := s.snapshot(ctx, "IsSlotTaken")
	if err != nil {
		return false, err
	}
	return SlotTaken(list, date, t, ""), nil
}

// AvailableSlotsForDay свободные слоты дня с учётом календаря, now и занятости
func (s *Service) AvailableSlotsForDay(ctx context.Context, date types.Date, now time.Time) (*models.DaySlots, error) {
	// выходной или дата вне окна: хранилище читать незачем
	if len(s.calendar.BookableSlots(date, now)) == 0 {
		return &models.DaySlots{Date: date, Slots: []types.TimeString{}}, nil
	}

	list, err := s.snapshot(ctx, "AvailableSlotsForDay")
	if err != nil {
		return nil, err
	}

	free := FreeSlots(s.calendar, list, date, now)
	s.logger.Info("AvailableSlotsForDay: date=%s free=%d", date, len(free))
	return &models.DaySlots{Date: date, Slots: free}, nil
}

// HasAnyAvailability true, если у дня есть хотя бы один свободный слот
func (s *Service) HasAnyAvailability(ctx context.Context, date types.Date, now time.Time) (bool, error) {
	slots, err := s.AvailableSlotsForDay(ctx, date, now)
	if err != nil {
		return false, err
	}
	return len(slots.Slots) > 0, nil
}

// Days окно бронирования от сегодня до конца горизонта включительно, по одному снимку
func (s *Service) Days(ctx context.Context, now time.Time) ([]models.Day, error) {
	list, err := s.snapshot(ctx, "Days")
	if err != nil {
		return nil, err
	}

	today := s.calendar.Today(now)
	end := s.calendar.HorizonEnd(now)

	days := make([]models.Day, 0, s.calendar.HorizonDays+1)
	for d := today; !d.After(end); d = d.AddDays(1) {
		_, open := s.calendar.BusinessHours(d.Weekday())
		free := 0
		if open {
			free = len(FreeSlots(s.calendar, list, d, now))
		}
		days = append(days, models.Day{
			Date:      d,
			Weekday:   d.Weekday().String(),
			Closed:    !open,
			Available: free > 0,
			FreeSlots: free,
		})
	}

	return days, nil
}

func (s *Service) snapshot(ctx context.Context, op string) ([]domain.Appointment, error) {
	list, err := s.store.ReadAll(ctx)
	if err != nil {
		s.logger.Error("%s: failed to read appointments: %v", op, err)
		return nil, fmt.Errorf("%w: %s - read: %v", ErrStorageUnavailable, op, err)
	}
	return list, nil
}
