package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/admin/users/:id", "DELETE", 200, 5*time.Millisecond)
	m.RecordRequest("/api/admin/users/:id", "DELETE", 200, 7*time.Millisecond)
	m.RecordError("/api/auth/login", "POST", "UNAUTHORIZED")

	snap := m.Snapshot()
	stats := snap.Requests["DELETE /api/admin/users/:id 200"]
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, int64(12), stats.TotalDuration)
	assert.Equal(t, int64(1), snap.Errors["POST /api/auth/login UNAUTHORIZED"])

	m.RecordError("/api/auth/login", "POST", "UNAUTHORIZED")
	assert.Equal(t, int64(1), snap.Errors["POST /api/auth/login UNAUTHORIZED"], "snapshot is a copy")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	assert.Empty(t, m.Snapshot().Requests)
}
