package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/victoragudo/hotel-booking-aggregator/internal/application/polling"
	"github.com/victoragudo/hotel-booking-aggregator/internal/application/usecase"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/booking"
	"github.com/victoragudo/hotel-booking-aggregator/internal/domain/hotel"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/auth"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/config"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/handler"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/metrics"
	"github.com/victoragudo/hotel-booking-aggregator/internal/infrastructure/queue"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/database"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/entities"
	"github.com/victoragudo/hotel-booking-aggregator/pkg/logger"
	"gorm.io/gorm"

	_ "github.com/victoragudo/hotel-booking-aggregator/docs"
)

// @title Hotel Booking Aggregator API
// @version 1.0
// @description Merges hotel metadata and polled prices from the hotel API and manages bookings
// @host localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type Application struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	logger *slog.Logger
	server *http.Server

	cache         *adapter.RedisCacheAdapter
	publisher     *queue.RabbitMQPublisher
	hotelProvider *adapter.HotelAPIAdapter
}

func main() {
	applicationLogger := logger.SetupLogger("info")

	cfg, err := config.LoadConfig()
	if err != nil {
		applicationLogger.Error(fmt.Sprintf("Failed to load configuration: %s", err.Error()))
		os.Exit(1)
	}

	applicationLogger = logger.SetupLogger(cfg.Logging.Level)

	app, err := NewApplication(cfg, applicationLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func NewApplication(cfg *config.Config, applicationLogger *slog.Logger) (*Application, error) {
	app := &Application{
		config: cfg,
		logger: applicationLogger,
	}

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	var cacheRepository hotel.CacheRepository
	if cfg.Redis.Enabled {
		app.redis = initRedis(cfg.Redis, applicationLogger)
		app.cache = adapter.NewRedisCacheAdapterWithClient(app.redis, cfg.Cache.Prefix, appMetrics, applicationLogger)
		cacheRepository = app.cache
	}

	db, err := database.GormOpen(cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	app.db = db

	if err := database.ConfigurePool(db, database.PoolOptions{
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		ConnMaxLife:        cfg.Database.ConnMaxLife,
	}); err != nil {
		return nil, err
	}

	if err := database.RunMigrations(db, &entities.BookingData{}); err != nil {
		return nil, err
	}

	var eventPublisher booking.EventPublisher
	if cfg.RabbitMQ.Enabled {
		publisher, err := initPublisher(cfg.RabbitMQ, applicationLogger)
		if err != nil {
			return nil, err
		}
		app.publisher = publisher
		eventPublisher = publisher
	}

	app.hotelProvider = adapter.NewHotelAPIAdapter(adapter.HotelAPIConfig{
		BaseURL:    cfg.HotelAPI.BaseURL,
		APIKey:     cfg.HotelAPI.APIKey,
		Timeout:    cfg.HotelAPI.Timeout,
		RateLimit:  cfg.HotelAPI.RateLimit,
		BurstLimit: cfg.HotelAPI.BurstLimit,
		CircuitBreaker: adapter.CircuitBreakerConfig{
			MaxRequests:         cfg.HotelAPI.CircuitBreaker.MaxRequests,
			Interval:            cfg.HotelAPI.CircuitBreaker.Interval,
			Timeout:             cfg.HotelAPI.CircuitBreaker.Timeout,
			ConsecutiveFailures: cfg.HotelAPI.CircuitBreaker.ConsecutiveFailures,
		},
	}, appMetrics, applicationLogger)

	poller, err := polling.NewPoller(
		app.hotelProvider,
		polling.Policy{MaxAttempts: cfg.Polling.MaxAttempts, Interval: cfg.Polling.Interval},
		applicationLogger,
		polling.WithRecorder(appMetrics),
	)
	if err != nil {
		return nil, err
	}

	searchDefaults := usecase.SearchDefaults{
		PartnerID:   cfg.Search.PartnerID,
		Currency:    cfg.Search.Currency,
		CountryCode: cfg.Search.CountryCode,
		LandingPage: cfg.Search.LandingPage,
		ProductType: cfg.Search.ProductType,
		Lang:        cfg.Search.Lang,
	}
	roomDefaults := usecase.RoomDefaults{
		Lang:        cfg.Rooms.Lang,
		Currency:    cfg.Rooms.Currency,
		CountryCode: cfg.Rooms.CountryCode,
		PartnerID:   cfg.Rooms.PartnerID,
	}

	metadataSource := usecase.NewHotelMetadataSource(app.hotelProvider, cacheRepository, cfg.Cache.MetadataTTL, applicationLogger)

	hotelHandler := handler.NewHotelHandler(
		usecase.NewSearchDestinationHotelsUseCase(metadataSource, poller, searchDefaults, applicationLogger),
		usecase.NewPollDestinationPricesUseCase(poller, searchDefaults, applicationLogger),
		usecase.NewGetHotelByIDUseCase(metadataSource, applicationLogger),
		usecase.NewGetRoomsUseCase(app.hotelProvider, metadataSource, roomDefaults, applicationLogger),
		applicationLogger,
	)

	bookingRepository := adapter.NewPostgresBookingRepository(db, applicationLogger)
	bookingHandler := handler.NewBookingHandler(
		usecase.NewCreateBookingUseCase(bookingRepository, eventPublisher, applicationLogger),
		usecase.NewListBookingsUseCase(bookingRepository, applicationLogger),
		usecase.NewGetBookingUseCase(bookingRepository, applicationLogger),
		applicationLogger,
	)

	tokenValidator, err := auth.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return nil, err
	}

	router := handler.NewRouter(hotelHandler, bookingHandler, handler.RouterConfig{
		EnableCORS:        cfg.Server.EnableCORS,
		RateLimit:         cfg.Server.RateLimit,
		RateBurst:         cfg.Server.RateBurst,
		RateLimitIdleTTL:  cfg.Server.RateLimitIdleTTL,
		TrustForwardedFor: cfg.Server.TrustForwardedFor,
		Metrics:           appMetrics,
		MetricsHandler:    appMetrics.Handler(),
		TokenValidator:    tokenValidator,
		Logger:            applicationLogger,
	})

	printRoutes(router, applicationLogger)

	app.server = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

func (app *Application) Start() error {
	ctx := context.Background()

	app.logger.Info("Starting hotel booking aggregator",
		"version", "1.0.0",
		"address", app.config.Server.Address(),
		"poll_max_attempts", app.config.Polling.MaxAttempts,
		"poll_interval", app.config.Polling.Interval)

	if err := app.performHealthChecks(ctx); err != nil {
		app.logger.Error("Health checks failed", "error", err)
		return err
	}

	go func() {
		figure.NewFigure("Aggregator", "", true).Print()
		fmt.Println("")
		fmt.Println("Hotel booking aggregator started at " + app.config.Server.Address())
		fmt.Println("")
		if err := app.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("HTTP server failed", "error", err)
		}
	}()

	app.waitForShutdown()

	return nil
}

func (app *Application) performHealthChecks(ctx context.Context) error {
	app.logger.Info("Performing health checks")

	if err := database.Ping(ctx, app.db); err != nil {
		return err
	}

	if app.cache != nil {
		if err := app.cache.Ping(ctx); err != nil {
			app.logger.Warn("Redis health check failed", "error", err)
		}
	}

	return nil
}

func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	app.logger.Info("Shutting down server...")

	timeout := app.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("Server forced to shutdown", "error", err)
	}

	if app.publisher != nil {
		app.publisher.Close()
	}

	if err := database.Close(app.db); err != nil {
		app.logger.Error("Error closing database", "error", err)
	}

	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("Error closing Redis", "error", err)
		}
	}

	app.logger.Info("Server stopped gracefully")
}

func initRedis(cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	logger.Info("Connecting to Redis", "address", cfg.Address())

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Address(),
		Password:        cfg.Password,
		DB:              cfg.Database,
		PoolSize:        cfg.PoolSize,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,
	})

	logger.Info("Redis client created")
	return client
}

func initPublisher(cfg config.RabbitMQConfig, logger *slog.Logger) (*queue.RabbitMQPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	publisher, err := queue.NewMQPublisher(conn, ch, cfg.Queue, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	logger.Info("RabbitMQ publisher ready", "queue", cfg.Queue)
	return publisher, nil
}

func printRoutes(router *mux.Router, logger *slog.Logger) {
	fmt.Println("API Routes Overview")
	fmt.Println("═══════════════════════════════════════════════════════════════")

	var routes []string

	err := router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ALL"}
		}

		methodStr := strings.Join(methods, ", ")
		routeDesc := fmt.Sprintf("  %-8s %s", methodStr, pathTemplate)

		switch {
		case strings.Contains(pathTemplate, "/health"):
			routeDesc += " - Health check endpoint"
		case strings.Contains(pathTemplate, "/metrics"):
			routeDesc += " - Prometheus metrics"
		case strings.Contains(pathTemplate, "/swagger"):
			routeDesc += " - API documentation (Swagger UI)"
		case strings.Contains(pathTemplate, "/hotels/uid/"):
			routeDesc += " - Search hotels with prices by destination"
		case strings.Contains(pathTemplate, "/hotels/prices/"):
			routeDesc += " - Poll destination prices until completed"
		case strings.Contains(pathTemplate, "/hotels/{id}"):
			routeDesc += " - Get specific hotel by ID"
		case strings.Contains(pathTemplate, "/rooms"):
			routeDesc += " - Get room prices for a hotel"
		case strings.Contains(pathTemplate, "/bookings/{id}"):
			routeDesc += " - Get own booking by ID"
		case strings.Contains(pathTemplate, "/bookings"):
			routeDesc += " - Create or list own bookings"
		default:
			routeDesc += " - API endpoint"
		}

		routes = append(routes, routeDesc)
		return nil
	})

	if err != nil {
		logger.Error("Error walking routes", "error", err)
		return
	}

	for _, route := range routes {
		fmt.Println(route)
	}

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("Total registered routes: %d\n", len(routes))
	fmt.Println("Visit /swagger/ for interactive API documentation")
}
