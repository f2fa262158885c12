package dbmetrics

import (
	"database/sql"
	"time"
)

// DefaultInterval период опроса статистики пула по умолчанию
const DefaultInterval = 15 * time.Second

// StatsSource источник статистики пула (*sql.DB, *sqlx.DB)
type StatsSource interface {
	Stats() sql.DBStats
}

// Recorder приёмник метрик пула
type Recorder interface {
	SetDBPoolStats(pool string, inUse, idle int, waitCount int64, waitDuration time.Duration)
}

// Collect один раз снимает статистику пула и передаёт её в recorder
func Collect(db StatsSource, rec Recorder, pool string) {
	stats := db.Stats()
	rec.SetDBPoolStats(pool, stats.InUse, stats.Idle, stats.WaitCount, stats.WaitDuration)
}

// Start периодически снимает статистику пула, пока не закрыт stop
func Start(db StatsSource, rec Recorder, pool string, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		Collect(db, rec, pool)
		for {
			select {
			case <-ticker.C:
				Collect(db, rec, pool)
			case <-stop:
				return
			}
		}
	}()
}
