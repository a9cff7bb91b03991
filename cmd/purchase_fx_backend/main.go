package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/SscSPs/purchase_fx_app/internal/adapters/treasury"
	"github.com/SscSPs/purchase_fx_app/internal/core/domain"
	"github.com/SscSPs/purchase_fx_app/internal/core/services"
	"github.com/SscSPs/purchase_fx_app/internal/handlers"
	"github.com/SscSPs/purchase_fx_app/internal/middleware"
	"github.com/SscSPs/purchase_fx_app/internal/platform/cache"
	"github.com/SscSPs/purchase_fx_app/internal/platform/config"
	"github.com/SscSPs/purchase_fx_app/internal/platform/metrics"
	"github.com/SscSPs/purchase_fx_app/internal/platform/resilience"
	"github.com/SscSPs/purchase_fx_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/purchase_fx_app/pkg/database"
)

const (
	rateCacheSize     = 10000
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations")
	if err != nil {
		logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rateMetrics := metrics.NewRateMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	rateCache, currencyCache, redisClient, err := newRateCaches(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize rate cache", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	policy := resilience.NewPolicy(resilience.Config{
		Name:             "treasury",
		MaxRetries:       cfg.RetryMaxRetries,
		BaseDelay:        cfg.RetryBaseDelay,
		FailureThreshold: cfg.BreakerFailureThreshold,
		OpenDuration:     cfg.BreakerOpenDuration,
		Logger:           logger,
		Metrics:          rateMetrics,
	})

	rateSource := treasury.NewClient(treasury.Config{
		BaseURL:            cfg.TreasuryBaseURL,
		Timeout:            cfg.TreasuryTimeout,
		RateLimitPerSecond: cfg.TreasuryRateLimitPerSecond,
		UserAgent:          cfg.TreasuryUserAgent,
		LookbackDays:       cfg.RateLookbackDays,
	}, policy, rateMetrics, logger)

	container := services.NewServiceContainer(pgsql.NewRepositoryProvider(dbPool), services.RateInfra{
		Source:        rateSource,
		RateCache:     rateCache,
		CurrencyCache: currencyCache,
		Metrics:       rateMetrics,
	})

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	apiLimiter, err := middleware.NewRateLimiter(cfg.APIRateLimit)
	if err != nil {
		logger.Error("Invalid API rate limit", slog.String("value", cfg.APIRateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Global middleware (logging, recovery, metrics, cors, rate limiting)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.RequestMetricsMiddleware(httpMetrics),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Location", "Retry-After", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(apiLimiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	if err := handlers.RegisterRoutes(r, container, metricsHandler); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}

	logger.Info("Server stopped")
}

// newRateCaches builds the rate and currency-list stores for the configured
// backend. The returned client is nil for the memory backend.
func newRateCaches(ctx context.Context, cfg *config.Config, logger *slog.Logger) (
	cache.Store[domain.ExchangeRate], cache.Store[[]string], *redis.Client, error,
) {
	if cfg.CacheBackend != config.CacheBackendRedis {
		logger.Info("Using in-memory rate cache", slog.Duration("ttl", cfg.RateCacheTTL))
		return cache.NewMemoryStore[domain.ExchangeRate](rateCacheSize, cfg.RateCacheTTL),
			cache.NewMemoryStore[[]string](1, cfg.RateCacheTTL),
			nil, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, nil, err
	}
	logger.Info("Using redis rate cache", slog.String("address", cfg.RedisAddress), slog.Duration("ttl", cfg.RateCacheTTL))

	return cache.NewRedisStore[domain.ExchangeRate](client, "purchase_fx:", cfg.RateCacheTTL, logger),
		cache.NewRedisStore[[]string](client, "purchase_fx:", cfg.RateCacheTTL, logger),
		client, nil
}
