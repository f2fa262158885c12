package availability

import "errors"

var (
	// ErrStorageUnavailable возвращается, если список записей не удалось прочитать
	ErrStorageUnavailable = errors.New("availability: storage unavailable")
)
