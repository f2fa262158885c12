package appointment

import "errors"

var (
	// ErrNotFound возвращается, когда запись не найдена
	ErrNotFound = errors.New("appointment.repository: appointment not found")

	// ErrStorageUnavailable возвращается при недоступности хранилища
	ErrStorageUnavailable = errors.New("appointment.repository: storage unavailable")

	// ErrSlotTaken возвращается, когда хранилище отклонило вторую активную запись на слот
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrTooMuchContention возвращается, когда оптимистичная транзакция не смогла зафиксироваться
	ErrTooMuchContention = errors.New("appointment.repository: too much contention")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("appointment.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")

	// ErrDecode возвращается, если сохранённый список не удалось разобрать
	ErrDecode = errors.New("appointment.repository: failed to decode appointments")
)
