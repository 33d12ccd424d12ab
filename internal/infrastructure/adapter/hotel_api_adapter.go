package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
)

const maxErrorBodyLength = 512

// UpstreamRecorder observes every completed hotel API call. Status is 0 for transport failures.
type UpstreamRecorder interface {
	ObserveUpstream(endpoint string, status int, duration time.Duration)
}

type HotelAPIConfig struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	RateLimit      float64
	BurstLimit     int
	CircuitBreaker CircuitBreakerConfig
}

type CircuitBreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// HotelAPIAdapter performs single GETs against the hotel API. It never retries and
// never interprets payloads.
type HotelAPIAdapter struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	recorder       UpstreamRecorder
	logger         *slog.Logger
}

func NewHotelAPIAdapter(config HotelAPIConfig, recorder UpstreamRecorder, logger *slog.Logger) *HotelAPIAdapter {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Limit(config.RateLimit)
	}
	burst := config.BurstLimit
	if burst <= 0 {
		burst = 1
	}

	consecutiveFailures := config.CircuitBreaker.ConsecutiveFailures
	if consecutiveFailures == 0 {
		consecutiveFailures = 5
	}

	breakerSettings := gobreaker.Settings{
		Name:        "hotel-api",
		MaxRequests: config.CircuitBreaker.MaxRequests,
		Interval:    config.CircuitBreaker.Interval,
		Timeout:     config.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= consecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &HotelAPIAdapter{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    100,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		rateLimiter:    rate.NewLimiter(limit, burst),
		circuitBreaker: gobreaker.NewCircuitBreaker(breakerSettings),
		recorder:       recorder,
		logger:         logger,
	}
}

func (h *HotelAPIAdapter) Get(ctx context.Context, endpoint hotel.Endpoint, params hotel.QueryParams) (json.RawMessage, error) {
	requestURL := h.baseURL + endpoint.Path
	if query := params.Encode().Encode(); query != "" {
		requestURL += "?" + query
	}

	if err := h.rateLimiter.Wait(ctx); err != nil {
		return nil, &hotel.UpstreamError{Endpoint: endpoint.Name, Err: fmt.Errorf("rate limiter error: %w", err)}
	}

	result, err := h.circuitBreaker.Execute(func() (any, error) {
		body, err := h.doRequest(ctx, endpoint, requestURL)
		if err != nil && ctx.Err() != nil {
			return &passthroughResult{err: err}, nil
		}
		var upstreamErr *hotel.UpstreamError
		if errors.As(err, &upstreamErr) && upstreamErr.IsNotFound() {
			return &passthroughResult{err: err}, nil
		}
		return body, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			h.logger.Warn("Hotel API circuit open, request rejected", "endpoint", endpoint.Name)
			return nil, &hotel.UpstreamError{Endpoint: endpoint.Name, StatusCode: http.StatusServiceUnavailable, Body: "circuit breaker open", Err: err}
		}
		return nil, err
	}

	if passthrough, ok := result.(*passthroughResult); ok {
		return nil, passthrough.err
	}
	return result.(json.RawMessage), nil
}

func (h *HotelAPIAdapter) doRequest(ctx context.Context, endpoint hotel.Endpoint, requestURL string) (json.RawMessage, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &hotel.UpstreamError{Endpoint: endpoint.Name, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	request.Header.Set("accept", "application/json")
	if h.apiKey != "" {
		request.Header.Set("x-api-key", h.apiKey)
	}

	h.logger.Debug("Calling hotel API", "endpoint", endpoint.Name, "url", requestURL)

	startTime := time.Now()
	resp, err := h.httpClient.Do(request)
	if err != nil {
		h.observe(endpoint, 0, startTime)
		h.logger.Error("Hotel API request failed", "endpoint", endpoint.Name, "error", err, "duration", time.Since(startTime))
		return nil, &hotel.UpstreamError{Endpoint: endpoint.Name, Err: err}
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	h.observe(endpoint, resp.StatusCode, startTime)
	if err != nil {
		return nil, &hotel.UpstreamError{Endpoint: endpoint.Name, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	h.logger.Debug("Hotel API response received",
		"endpoint", endpoint.Name,
		"status_code", resp.StatusCode,
		"size", len(body),
		"duration", time.Since(startTime))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &hotel.UpstreamError{
			Endpoint:   endpoint.Name,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBodyLength),
		}
	}

	return body, nil
}

func (h *HotelAPIAdapter) observe(endpoint hotel.Endpoint, status int, startTime time.Time) {
	if h.recorder != nil {
		h.recorder.ObserveUpstream(endpoint.Name, status, time.Since(startTime))
	}
}

// passthroughResult carries an error through the circuit breaker without counting it
// as a failure: upstream 404s, and calls abandoned because the caller's context ended.
type passthroughResult struct {
	err error
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
