package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value значение метрики name с заданными метками (ConstLabels не учитываются)
func value(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if !hasLabels(m, labels) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			}
		}
	}
	t.Fatalf("metric %s%v not found", name, labels)
	return 0
}

func hasLabels(m *dto.Metric, want map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, l := range m.GetLabel() {
		got[l.GetName()] = l.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegisterer("booking-test", reg)

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/appointments", http.StatusCreated, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/appointments", http.StatusConflict, 5*time.Millisecond)
	m.AppointmentCreated()
	m.SlotConflict()
	m.AppointmentsPurged(0)
	m.AppointmentsPurged(3)
	m.RateLimited("booking")
	m.NotificationFailed("booked")
	m.SetDBPoolStats("postgres", 2, 3, 4, time.Second)

	assert.Equal(t, 1.0, value(t, reg, "http_requests_total", map[string]string{"status": "201", "service": "booking-test"}))
	assert.Equal(t, 1.0, value(t, reg, "http_requests_total", map[string]string{"status": "409"}))
	assert.Equal(t, 1.0, value(t, reg, "appointments_created_total", nil))
	assert.Equal(t, 1.0, value(t, reg, "slot_conflicts_total", nil))
	assert.Equal(t, 3.0, value(t, reg, "appointments_purged_total", nil))
	assert.Equal(t, 1.0, value(t, reg, "rate_limited_total", map[string]string{"scope": "booking"}))
	assert.Equal(t, 1.0, value(t, reg, "notifications_failed_total", map[string]string{"kind": "booked"}))
	assert.Equal(t, 2.0, value(t, reg, "db_open_connections", map[string]string{"state": "in_use"}))
	assert.Equal(t, 3.0, value(t, reg, "db_open_connections", map[string]string{"state": "idle"}))
	assert.Equal(t, 4.0, value(t, reg, "db_wait_count", map[string]string{"pool": "postgres"}))
}
