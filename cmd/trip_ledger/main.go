package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/trip_ledger_app/internal/adapters/rates"
	"github.com/SscSPs/trip_ledger_app/internal/apperrors"
	"github.com/SscSPs/trip_ledger_app/internal/core/domain"
	"github.com/SscSPs/trip_ledger_app/internal/core/ports"
	portsrepo "github.com/SscSPs/trip_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trip_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/trip_ledger_app/internal/core/services"
	"github.com/SscSPs/trip_ledger_app/internal/handlers"
	"github.com/SscSPs/trip_ledger_app/internal/middleware"
	"github.com/SscSPs/trip_ledger_app/internal/platform/config"
	"github.com/SscSPs/trip_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/trip_ledger_app/internal/repositories/memory"
	"github.com/SscSPs/trip_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Trip Ledger API
// @version 1.0
// @description Multi-currency trip ledger with profit and loss reporting.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry, err := domain.NewCurrencyRegistry(domain.CurrenciesFromCodes(cfg.SupportedCurrencies)...)
	if err != nil {
		logger.Error("Failed to build currency registry", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := setupRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	container := services.NewServiceContainer(cfg, registry, repos, rateSource(cfg, logger))
	seedRates(container, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.ActorHeader, middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RateLimit(rateLimiter),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, registry); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("pivot_currency", cfg.PivotCurrency),
		slog.Any("supported_currencies", cfg.SupportedCurrencies))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupRepositories connects to PostgreSQL and applies migrations when a
// database URL is configured, and falls back to in-memory storage otherwise.
func setupRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("No database configured, using in-memory storage")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// rateSource picks the rate source for refreshes: a rates file wins over
// rates given in the environment. Without either, rates are manual only.
func rateSource(cfg *config.Config, logger *slog.Logger) ports.RateSource {
	switch {
	case cfg.RatesFile != "":
		logger.Info("Using rates file as rate source", slog.String("path", cfg.RatesFile))
		return rates.NewFileRateSource(cfg.RatesFile)
	case len(cfg.DefaultRates) > 0:
		logger.Info("Using configured default rates as rate source", slog.Int("rate_count", len(cfg.DefaultRates)))
		return rates.NewStaticRateSource(cfg.PivotCurrency, cfg.DefaultRates)
	default:
		return nil
	}
}

// seedRates stores an initial snapshot from the rate source when storage has none.
func seedRates(container *portssvc.ServiceContainer, logger *slog.Logger) {
	ctx := middleware.WithLogger(context.Background(), logger)
	if _, err := container.ExchangeRate.GetCurrentSnapshot(ctx); err == nil {
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Could not read current exchange rates", slog.String("error", err.Error()))
		return
	}

	snapshot, err := container.ExchangeRate.RefreshRates(ctx, "system")
	if err != nil {
		logger.Warn("No exchange rates seeded; set them through the API", slog.String("error", err.Error()))
		return
	}
	logger.Info("Seeded exchange rates", slog.String("snapshot_id", snapshot.SnapshotID))
}
