package appointments

import "errors"

var (
	// ErrNotFound возвращается, когда запись не найдена (или идентификатор некорректен)
	ErrNotFound = errors.New("appointments: appointment not found")

	// ErrSlotTaken возвращается, когда на слот уже есть активная запись
	ErrSlotTaken = errors.New("appointments: slot already taken")

	// ErrSlotNotBookable возвращается, когда календарь не допускает запись на слот
	ErrSlotNotBookable = errors.New("appointments: slot is not bookable")

	// ErrAppointmentCancelled возвращается при попытке перенести отменённую запись
	ErrAppointmentCancelled = errors.New("appointments: appointment is cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrStorageUnavailable возвращается при сбое хранилища
	ErrStorageUnavailable = errors.New("appointments: storage unavailable")
)
