package monitoring

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordRPC("/wealthtrack.v1.PerformanceService/GetPerformance", "OK", 10*time.Millisecond)
	m.RecordRPC("/wealthtrack.v1.PerformanceService/GetPerformance", "OK", 20*time.Millisecond)
	m.RecordCache("performance", true)
	m.RecordCache("performance", false)
	m.RecordCache("performance", false)
	m.RecordReport("history", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rpcRequestsTotal.WithLabelValues("/wealthtrack.v1.PerformanceService/GetPerformance", "OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequestsTotal.WithLabelValues("performance", "hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequestsTotal.WithLabelValues("performance", "miss")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordReport("performance", 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "wealthtrack_report_build_duration_seconds")
}
