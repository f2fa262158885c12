package calendar

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/m04kA/barbershop-booking/internal/domain"
	"github.com/m04kA/barbershop-booking/pkg/types"
)

// Hours рабочие часы одного дня, Close не включается в сетку слотов
type Hours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Calendar чистые вычисления сетки слотов. Все функции принимают now явно
// и переводят его в Location перед любой арифметикой.
type Calendar struct {
	Location    *time.Location
	SlotMinutes int
	HorizonDays int
	Hours       map[time.Weekday]Hours
}

// DefaultHours Пн-Пт 09:00-19:00, Сб 09:00-18:00, воскресенье выходной
func DefaultHours() map[time.Weekday]Hours {
	weekday := Hours{Open: "09:00", Close: "19:00"}
	return map[time.Weekday]Hours{
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  {Open: "09:00", Close: "18:00"},
	}
}

// LoadLocation загружает часовой пояс из встроенной базы tzdata
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownLocation, name, err)
	}
	return loc, nil
}

// New создаёт календарь с расписанием салона по умолчанию
func New(loc *time.Location) *Calendar {
	return &Calendar{
		Location:    loc,
		SlotMinutes: domain.DefaultSlotMinutes,
		HorizonDays: domain.DefaultHorizonDays,
		Hours:       DefaultHours(),
	}
}

// BusinessHours возвращает рабочие часы дня недели, false если день выходной
func (c *Calendar) BusinessHours(weekday time.Weekday) (Hours, bool) {
	h, ok := c.Hours[weekday]
	if !ok || h.Open.Minutes() < 0 || h.Close.Minutes() <= h.Open.Minutes() {
		return Hours{}, false
	}
	return h, true
}

// SlotsForDay все границы слотов от открытия до закрытия (не включая закрытие)
func (c *Calendar) SlotsForDay(date types.Date) []types.TimeString {
	h, ok := c.BusinessHours(date.Weekday())
	if !ok {
		return nil
	}

	var slots []types.TimeString
	for m := h.Open.Minutes(); m < h.Close.Minutes(); m += c.SlotMinutes {
		t, err := types.TimeStringFromMinutes(m)
		if err != nil {
			break
		}
		slots = append(slots, t)
	}
	return slots
}

// Today бизнес-дата момента now
func (c *Calendar) Today(now time.Time) types.Date {
	return types.DateOf(now.In(c.Location))
}

// HorizonEnd последняя дата, на которую ещё можно записаться
func (c *Calendar) HorizonEnd(now time.Time) types.Date {
	return c.Today(now).AddDays(c.HorizonDays)
}

// NextSlotBoundary минуты от полуночи до ближайшей границы слота не раньше now
func (c *Calendar) NextSlotBoundary(now time.Time) int {
	local := now.In(c.Location)
	h, m, s := local.Clock()
	seconds := h*3600 + m*60 + s
	if local.Nanosecond() > 0 {
		seconds++
	}

	slotSeconds := c.SlotMinutes * 60
	slots := (seconds + slotSeconds - 1) / slotSeconds
	return slots * c.SlotMinutes
}

// IsSlotOfDay true, если t является одной из границ сетки этого дня
func (c *Calendar) IsSlotOfDay(date types.Date, t types.TimeString) bool {
	h, ok := c.BusinessHours(date.Weekday())
	if !ok {
		return false
	}
	m := t.Minutes()
	if m < h.Open.Minutes() || m >= h.Close.Minutes() {
		return false
	}
	return (m-h.Open.Minutes())%c.SlotMinutes == 0
}

// Check объясняет, почему слот нельзя забронировать; nil если можно
func (c *Calendar) Check(date types.Date, t types.TimeString, now time.Time) error {
	if _, ok := c.BusinessHours(date.Weekday()); !ok {
		return ErrClosedDay
	}

	today := c.Today(now)
	if date.Before(today) {
		return ErrPastDate
	}
	if date.After(c.HorizonEnd(now)) {
		return ErrBeyondHorizon
	}
	if !c.IsSlotOfDay(date, t) {
		return ErrOutsideHours
	}
	if date.Equal(today) && t.Minutes() < c.NextSlotBoundary(now) {
		return ErrSlotPassed
	}
	return nil
}

// IsBookable true, если слот допустим календарём (занятость проверяется отдельно)
func (c *Calendar) IsBookable(date types.Date, t types.TimeString, now time.Time) bool {
	return c.Check(date, t, now) == nil
}

// BookableSlots SlotsForDay, отфильтрованные IsBookable
func (c *Calendar) BookableSlots(date types.Date, now time.Time) []types.TimeString {
	var out []types.TimeString
	for _, t := range c.SlotsForDay(date) {
		if c.IsBookable(date, t, now) {
			out = append(out, t)
		}
	}
	return out
}

// OpeningRange самое раннее открытие и самое позднее закрытие за неделю
func (c *Calendar) OpeningRange() (open, closing types.TimeString, ok bool) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		h, exists := c.BusinessHours(wd)
		if !exists {
			continue
		}
		if !ok || h.Open.IsBefore(open) {
			open = h.Open
		}
		if !ok || h.Close.IsAfter(closing) {
			closing = h.Close
		}
		ok = true
	}
	return open, closing, ok
}
