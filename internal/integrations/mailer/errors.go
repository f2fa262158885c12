package mailer

import "errors"

var (
	// ErrRender возвращается при ошибке сборки письма
	ErrRender = errors.New("mailer: failed to render message")

	// ErrSend возвращается при ошибке отправки
	ErrSend = errors.New("mailer: failed to send message")
)
