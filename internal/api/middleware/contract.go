package middleware

import (
	"time"
)

// HTTPMetrics метрики HTTP запросов
type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, d time.Duration)
}

// RateLimitRecorder учёт отклонённых по лимиту запросов
type RateLimitRecorder interface {
	RateLimited(scope string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopRecorder struct{}

func (nopRecorder) RateLimited(string) {}
