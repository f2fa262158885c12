package ratelimit

import (
	"context"
	"errors"
	"time"
)

// Значения по умолчанию для записи: 3 попытки за 15 минут с одного клиента
const (
	DefaultBookingLimit  = 3
	DefaultBookingWindow = 15 * time.Minute
)

// ErrUnavailable возвращается, если хранилище счётчиков недоступно
var ErrUnavailable = errors.New("ratelimit: backend unavailable")

// Decision результат проверки
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RetryAfter через сколько можно повторить попытку
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.Allowed || !d.ResetAt.After(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// Limiter скользящее окно попыток по идентификатору клиента
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}
