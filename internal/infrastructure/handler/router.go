package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	EnableCORS        bool
	RateLimit         float64
	RateBurst         int
	RateLimitIdleTTL  time.Duration
	TrustForwardedFor bool
	Metrics           HTTPMetrics
	MetricsHandler    http.Handler
	TokenValidator    TokenValidator
	Logger            *slog.Logger
}

func NewRouter(hotelHandler *HotelHandler, bookingHandler *BookingHandler, cfg RouterConfig) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/hotels/uid/{destinationId}", hotelHandler.GetHotelsByDestination).Methods(http.MethodGet)
	router.HandleFunc("/hotels/prices/{destinationId}", hotelHandler.GetDestinationPrices).Methods(http.MethodGet)
	router.HandleFunc("/hotels/{id}", hotelHandler.GetHotelByID).Methods(http.MethodGet)
	router.HandleFunc("/rooms", hotelHandler.GetRooms).Methods(http.MethodGet)

	if bookingHandler != nil {
		bookings := router.PathPrefix("/bookings").Subrouter()
		bookings.HandleFunc("", bookingHandler.CreateBooking).Methods(http.MethodPost)
		bookings.HandleFunc("", bookingHandler.ListBookings).Methods(http.MethodGet)
		bookings.HandleFunc("/{id}", bookingHandler.GetBooking).Methods(http.MethodGet)
		bookings.Use(AuthMiddleware(cfg.TokenValidator, cfg.Logger))
	}

	router.HandleFunc("/health", hotelHandler.HealthCheck).Methods(http.MethodGet)
	if cfg.MetricsHandler != nil {
		router.Handle("/metrics", cfg.MetricsHandler).Methods(http.MethodGet)
	}
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	if cfg.EnableCORS {
		router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	}

	router.Use(RequestIDMiddleware)
	if cfg.RateLimit > 0 {
		router.Use(RateLimitMiddleware(RateLimitOptions{
			RequestsPerSecond: cfg.RateLimit,
			Burst:             cfg.RateBurst,
			IdleTTL:           cfg.RateLimitIdleTTL,
			TrustForwardedFor: cfg.TrustForwardedFor,
		}, cfg.Metrics))
	}
	router.Use(LoggingMiddleware(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(MetricsMiddleware(cfg.Metrics))
	}
	if cfg.EnableCORS {
		router.Use(CORSMiddleware)
	}

	return router
}
