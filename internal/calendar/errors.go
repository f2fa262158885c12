package calendar

import "errors"

var (
	// ErrClosedDay день без рабочих часов (воскресенье)
	ErrClosedDay = errors.New("calendar: shop is closed on this day")

	// ErrPastDate дата раньше сегодняшней
	ErrPastDate = errors.New("calendar: date is in the past")

	// ErrBeyondHorizon дата дальше горизонта бронирования
	ErrBeyondHorizon = errors.New("calendar: date is beyond the booking horizon")

	// ErrSlotPassed время на сегодня уже прошло
	ErrSlotPassed = errors.New("calendar: slot has already passed")

	// ErrOutsideHours время вне рабочих часов или не выровнено по сетке слотов
	ErrOutsideHours = errors.New("calendar: time is not a slot of this day")

	// ErrUnknownLocation не удалось загрузить часовой пояс
	ErrUnknownLocation = errors.New("calendar: unknown location")
)
