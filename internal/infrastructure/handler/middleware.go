package handler

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/auth"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/constants"
)

type HTTPMetrics interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
	IncRateLimitDrops()
}

type TokenValidator interface {
	Validate(token string) (*auth.Identity, error)
}

type requestIDKey struct{}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDMiddleware propagates X-Request-ID, generating one when the client sent none.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constants.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(constants.RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID)))
	})
}

func LoggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			logger.Info("HTTP request",
				constants.RequestId, RequestIDFrom(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"status_code", wrapped.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// MetricsMiddleware records requests by route template so path parameters do not explode cardinality.
func MetricsMiddleware(metrics HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}
			metrics.ObserveHTTPRequest(r.Method, path, wrapped.statusCode, time.Since(start))
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+constants.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

const defaultLimiterIdleTTL = 10 * time.Minute

// RateLimitOptions configures the per-client token buckets. A bucket is dropped after
// IdleTTL without requests. TrustForwardedFor keys clients on X-Forwarded-For and
// should only be enabled behind a proxy that sets it.
type RateLimitOptions struct {
	RequestsPerSecond float64
	Burst             int
	IdleTTL           time.Duration
	TrustForwardedFor bool
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type clientLimiters struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiters(options RateLimitOptions) *clientLimiters {
	burst := options.Burst
	if burst <= 0 {
		burst = 1
	}
	idleTTL := options.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultLimiterIdleTTL
	}
	return &clientLimiters{
		limiters:  make(map[string]*clientLimiter),
		limit:     rate.Limit(options.RequestsPerSecond),
		burst:     burst,
		idleTTL:   idleTTL,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (c *clientLimiters) get(clientID string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= c.idleTTL {
		for id, entry := range c.limiters {
			if now.Sub(entry.lastSeen) >= c.idleTTL {
				delete(c.limiters, id)
			}
		}
		c.lastSweep = now
	}

	entry, ok := c.limiters[clientID]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.limiters[clientID] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

func (c *clientLimiters) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.limiters)
}

// RateLimitMiddleware applies a token bucket per client address.
func RateLimitMiddleware(options RateLimitOptions, metrics HTTPMetrics) mux.MiddlewareFunc {
	limiters := newClientLimiters(options)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiters.get(clientIP(r, options.TrustForwardedFor)).Allow() {
				if metrics != nil {
					metrics.IncRateLimitDrops()
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request, trustForwardedFor bool) string {
	if trustForwardedFor {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AuthMiddleware requires a valid bearer token and stores the caller identity in the request context.
func AuthMiddleware(validator TokenValidator, logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))

			identity, err := validator.Validate(token)
			if err != nil {
				logger.Debug("Rejected unauthenticated request", "path", r.URL.Path, "error", err)
				writeError(w, logger, http.StatusUnauthorized, "unauthorized", "")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}
