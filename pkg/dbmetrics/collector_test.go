package dbmetrics

import (
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeDB struct{ stats sql.DBStats }

func (f fakeDB) Stats() sql.DBStats { return f.stats }

type poolSample struct {
	pool      string
	inUse     int
	idle      int
	waitCount int64
}

type fakeRecorder struct {
	mu      sync.Mutex
	samples []poolSample
}

func (r *fakeRecorder) SetDBPoolStats(pool string, inUse, idle int, waitCount int64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, poolSample{pool: pool, inUse: inUse, idle: idle, waitCount: waitCount})
}

func (r *fakeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

func TestCollect(t *testing.T) {
	rec := &fakeRecorder{}
	Collect(fakeDB{stats: sql.DBStats{InUse: 2, Idle: 5, WaitCount: 7}}, rec, "postgres")

	assert.Equal(t, []poolSample{{pool: "postgres", inUse: 2, idle: 5, waitCount: 7}}, rec.samples)
}

func TestStart_StopsOnClose(t *testing.T) {
	rec := &fakeRecorder{}
	stop := make(chan struct{})

	Start(fakeDB{}, rec, "postgres", 5*time.Millisecond, stop)

	assert.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 5*time.Millisecond)

	close(stop)
	time.Sleep(20 * time.Millisecond)
	n := rec.count()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, n, rec.count())
}
