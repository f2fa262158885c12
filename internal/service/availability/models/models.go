package models

import "github.com/m04kA/barbershop-booking/pkg/types"

// Day доступность одного дня окна бронирования
type Day struct {
	Date      types.Date `json:"date"`
	Weekday   string     `json:"weekday"`
	Closed    bool       `json:"closed"`
	Available bool       `json:"available"`
	FreeSlots int        `json:"freeSlots"`
}

// DaySlots свободные слоты дня
type DaySlots struct {
	Date  types.Date         `json:"date"`
	Slots []types.TimeString `json:"slots"`
}
