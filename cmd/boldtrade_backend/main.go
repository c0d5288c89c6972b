package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/boldtrade/boldtrade_backend/internal/adapters/cache/redis"
	"github.com/boldtrade/boldtrade_backend/internal/adapters/database/memory"
	"github.com/boldtrade/boldtrade_backend/internal/adapters/database/pgsql"
	"github.com/boldtrade/boldtrade_backend/internal/adapters/pricing/coinranking"
	portsrepo "github.com/boldtrade/boldtrade_backend/internal/core/ports/repositories"
	portssvc "github.com/boldtrade/boldtrade_backend/internal/core/ports/services"
	"github.com/boldtrade/boldtrade_backend/internal/core/services"
	"github.com/boldtrade/boldtrade_backend/internal/handlers"
	"github.com/boldtrade/boldtrade_backend/internal/middleware"
	"github.com/boldtrade/boldtrade_backend/internal/platform/config"
	"github.com/boldtrade/boldtrade_backend/internal/utils"
	"github.com/boldtrade/boldtrade_backend/pkg/database"
)

// @title BoldTrade Backend API
// @version 1.0
// @description Demo trading backend: portfolio ledger, trades, exchange and simulated funding.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize repositories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	serviceContainer := services.NewServiceContainer(cfg, repos, buildQuoteProvider(cfg, logger))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories selects durable stores when postgres/redis are configured,
// falling back to the in-memory adapters for local demo runs. The returned
// cleanup func closes whatever was opened.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	var repos portsrepo.RepositoryProvider
	cleanups := []func(){}
	cleanup := func() {
		for _, fn := range cleanups {
			fn()
		}
	}

	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return repos, cleanup, err
		}
		cleanups = append(cleanups, func() { database.ClosePgxPool(dbPool) })
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg, logger); err != nil {
			return repos, cleanup, err
		}
		repos.AccountRepo = pgsql.NewAccountRepository(dbPool)
	} else {
		logger.Warn("PGSQL_URL not set, using in-memory account store")
		repos.AccountRepo = memory.NewAccountRepository()
	}

	if cfg.RedisAddr != "" {
		client, err := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return repos, cleanup, err
		}
		cleanups = append(cleanups, func() { _ = client.Close() })
		logger.Info("Redis connection established.")
		repos.SessionRepo = redis.NewSessionRepository(client)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory session store")
		repos.SessionRepo = memory.NewSessionRepository()
	}

	return repos, cleanup, nil
}

// buildQuoteProvider returns a live price source when an API key is
// configured, otherwise nil so the pricing service serves fallback prices.
func buildQuoteProvider(cfg *config.Config, logger *slog.Logger) portssvc.QuoteProvider {
	if cfg.CoinrankingAPIKey == "" {
		logger.Warn("COINRANKING_API_KEY not set, serving fallback prices only")
		return nil
	}
	return coinranking.NewClient(cfg.CoinrankingAPIKey)
}

func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Open a temporary standard sql.DB connection for migrations, using the
	// pgx/v5/stdlib driver to be compatible with the main pool.
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
