package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter журнал попыток в памяти процесса.
// При нескольких экземплярах сервиса лимит считается на каждый экземпляр отдельно.
type MemoryLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	hits      map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter создает лимитер на limit попыток за window
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = DefaultBookingLimit
	}
	if window <= 0 {
		window = DefaultBookingWindow
	}
	return &MemoryLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	recent := prune(l.hits[key], now.Add(-l.window))

	if len(recent) >= l.limit {
		l.hits[key] = recent
		return Decision{
			Allowed:   false,
			Remaining: 0,
			ResetAt:   recent[0].Add(l.window),
		}, nil
	}

	recent = append(recent, now)
	l.hits[key] = recent
	return Decision{
		Allowed:   true,
		Remaining: l.limit - len(recent),
		ResetAt:   recent[0].Add(l.window),
	}, nil
}

// sweep раз в окно удаляет клиентов без свежих попыток
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	cutoff := now.Add(-l.window)
	for key, hits := range l.hits {
		if len(prune(hits, cutoff)) == 0 {
			delete(l.hits, key)
		}
	}
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
