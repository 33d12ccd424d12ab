package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	UpstreamDuration    *prometheus.HistogramVec
	UpstreamRequests    *prometheus.CounterVec
	PollAttempts        *prometheus.HistogramVec
	PollOutcomes        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	RateLimitDropsTotal prometheus.Counter
	CacheOperations     *prometheus.CounterVec
	Registry            *prometheus.Registry
}

// NewMetrics creates the aggregator collectors and registers them on registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		UpstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hotel_api_request_duration_seconds",
				Help:    "Latency of hotel API calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "status"},
		),
		UpstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotel_api_requests_total",
				Help: "Hotel API calls by endpoint and status, 0 for transport failures",
			},
			[]string{"endpoint", "status"},
		),
		PollAttempts: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "price_poll_attempts",
				Help:    "Upstream calls made per price poll",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
			[]string{"endpoint"},
		),
		PollOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "price_poll_outcomes_total",
				Help: "Price polls by terminal state",
			},
			[]string{"endpoint", "state"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RateLimitDropsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "http_ratelimit_drops_total",
			Help: "Requests dropped due to rate limiting",
		}),
		CacheOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hotel_cache_operations_total",
				Help: "Hotel metadata cache operations by result",
			},
			[]string{"operation", "result"},
		),
		Registry: registry,
	}

	registry.MustRegister(
		m.UpstreamDuration,
		m.UpstreamRequests,
		m.PollAttempts,
		m.PollOutcomes,
		m.HTTPRequestDuration,
		m.HTTPRequestsTotal,
		m.RateLimitDropsTotal,
		m.CacheOperations,
	)

	return m
}

func (m *Metrics) ObserveUpstream(endpoint string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.UpstreamDuration.WithLabelValues(endpoint, code).Observe(duration.Seconds())
	m.UpstreamRequests.WithLabelValues(endpoint, code).Inc()
}

func (m *Metrics) ObservePoll(endpoint string, attempts int, state string) {
	m.PollAttempts.WithLabelValues(endpoint).Observe(float64(attempts))
	m.PollOutcomes.WithLabelValues(endpoint, state).Inc()
}

func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
}

func (m *Metrics) IncRateLimitDrops() { m.RateLimitDropsTotal.Inc() }

func (m *Metrics) ObserveCache(operation, result string) {
	m.CacheOperations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
