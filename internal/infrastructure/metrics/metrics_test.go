package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, registry *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := true
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					matched = false
				}
			}
			if matched {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestMetrics_ObservePoll(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.ObservePoll("prices", 3, "completed")
	m.ObservePoll("prices", 5, "exhausted")
	m.ObservePoll("prices", 1, "completed")

	assert.Equal(t, 2.0, counterValue(t, registry, "price_poll_outcomes_total", map[string]string{"state": "completed"}))
	assert.Equal(t, 1.0, counterValue(t, registry, "price_poll_outcomes_total", map[string]string{"state": "exhausted"}))
}

func TestMetrics_ObserveUpstreamHTTPAndCache(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.ObserveUpstream("hotels", 200, 15*time.Millisecond)
	m.ObserveUpstream("hotels", 0, time.Second)
	m.ObserveHTTPRequest(http.MethodGet, "/rooms", 400, time.Millisecond)
	m.IncRateLimitDrops()
	m.ObserveCache("get", "hit")
	m.ObserveCache("get", "miss")
	m.ObserveCache("get", "hit")

	assert.Equal(t, 1.0, counterValue(t, registry, "hotel_api_requests_total", map[string]string{"endpoint": "hotels", "status": "0"}))
	assert.Equal(t, 1.0, counterValue(t, registry, "http_requests_total", map[string]string{"path": "/rooms", "status": "400"}))
	assert.Equal(t, 1.0, counterValue(t, registry, "http_ratelimit_drops_total", nil))
	assert.Equal(t, 2.0, counterValue(t, registry, "hotel_cache_operations_total", map[string]string{"result": "hit"}))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.ObservePoll("prices", 2, "completed")

	recorder := httptest.NewRecorder()
	m.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "price_poll_outcomes_total")
}
