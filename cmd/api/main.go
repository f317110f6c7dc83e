package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vivasaude/consultaprecos/internal/adapters/cache"
	"github.com/vivasaude/consultaprecos/internal/adapters/database"
	"github.com/vivasaude/consultaprecos/internal/adapters/events"
	"github.com/vivasaude/consultaprecos/internal/adapters/providers/geolocation"
	"github.com/vivasaude/consultaprecos/internal/api/handlers"
	"github.com/vivasaude/consultaprecos/internal/api/routes"
	"github.com/vivasaude/consultaprecos/internal/application/services"
	"github.com/vivasaude/consultaprecos/internal/domain/providers"
	"github.com/vivasaude/consultaprecos/internal/domain/repositories"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/clients/postgres"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/clients/redis"
	"github.com/vivasaude/consultaprecos/internal/infrastructure/observability"
	"github.com/vivasaude/consultaprecos/internal/query"
	"github.com/vivasaude/consultaprecos/pkg/config"
	"github.com/vivasaude/consultaprecos/pkg/retry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client; the service degrades gracefully without it
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Listing repository, wrapped with snapshot caching when Redis is up
	baseListingAdapter := database.NewListingAdapter(pgClient)
	var listingRepo repositories.ListingRepository
	if cacheProvider != nil {
		listingRepo = database.NewCachedListingAdapter(baseListingAdapter, cacheProvider, metrics, cfg.Listings.SnapshotCacheTTL)
		log.Info().Msg("listing adapter wrapped with snapshot cache")
	} else {
		listingRepo = baseListingAdapter
		log.Warn().Msg("listing adapter running without cache (Redis unavailable)")
	}

	// Event bus for listing mutation events
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("event bus initialized")
	} else {
		log.Warn().Msg("event bus disabled (Redis unavailable)")
	}

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "openweather":
		if cfg.Geolocation.APIKey == "" {
			log.Warn().Msg("GEOLOCATION_API_KEY is not set; using mock geolocation provider")
			geolocationProvider = geolocation.NewMockProvider()
		} else {
			geolocationProvider = geolocation.NewOpenWeatherProvider(cfg.Geolocation.APIKey, cfg.Geolocation.Country, cacheProvider)
		}
	default:
		geolocationProvider = geolocation.NewMockProvider()
	}

	// Initialize services
	snapshotStore := query.NewSnapshotStore()
	listingService := services.NewListingService(listingRepo, eventBus, snapshotStore, metrics, cfg.Listings.PageSize)
	comparisonService := services.NewComparisonService(snapshotStore, geolocationProvider, metrics, cfg.Listings.ComparisonPageSize)

	// Load the initial snapshot, retrying briefly. A final failure is
	// tolerated: the API starts and serves 503 until a refresh succeeds.
	initialFetch := retry.Config{
		MaxAttempts:     3,
		InitialDelay:    time.Second,
		MaxDelay:        5 * time.Second,
		BackoffFactor:   2.0,
		MaxTotalTimeout: 30 * time.Second,
	}
	err = retry.Do(ctx, initialFetch,
		func() error { return listingService.Refresh(ctx) },
		func(attempt int, err error, nextDelay time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).
				Msg("initial snapshot load failed, retrying")
		},
	)
	if err != nil {
		log.Warn().Err(err).Msg("initial snapshot load failed, searches will return 503 until data loads")
	}

	// Initialize handlers
	listingHandler := handlers.NewListingHandler(listingService)
	comparisonHandler := handlers.NewComparisonHandler(comparisonService)

	router := routes.NewRouter(listingHandler, comparisonHandler, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
