package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/api/feedback", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/feedback", "GET", 200, 30*time.Millisecond)
	m.RecordError("/api/feedback/:id", "PUT", "NOT_FOUND")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap.Requests["/api/feedback|GET|200"])
	assert.Equal(t, int64(20), snap.AvgLatencyMs["/api/feedback|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/api/feedback/:id|PUT|NOT_FOUND"])

	var nilMetrics *Metrics
	nilMetrics.RecordRequest("/", "GET", 200, time.Millisecond)
	assert.Empty(t, nilMetrics.Snapshot().Requests)
}
