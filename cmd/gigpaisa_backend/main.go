package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/handlers"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
	"github.com/gigpaisa/gigpaisa_backend/internal/queue/amqp"
	"github.com/gigpaisa/gigpaisa_backend/internal/repositories/cache/memory"
	redisstore "github.com/gigpaisa/gigpaisa_backend/internal/repositories/cache/redis"
	"github.com/gigpaisa/gigpaisa_backend/internal/repositories/database/pgsql"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils"
	"github.com/gigpaisa/gigpaisa_backend/internal/worker"
	"github.com/gigpaisa/gigpaisa_backend/pkg/config"
	"github.com/gigpaisa/gigpaisa_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title GigPaisa Backend API
// @version 1.0
// @description Personal finance backend for gig workers.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// OTP storage: Redis when configured, in-process fallback otherwise.
	var otpStore portsrepo.OTPStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Invalid REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		otpStore = redisstore.NewOTPStore(redis.NewClient(opts))
		logger.Info("Using Redis OTP store")
	} else {
		otpStore = memory.NewOTPStore()
		logger.Warn("REDIS_URL not set, using in-memory OTP store")
	}

	// Recompute retry queue. Optional; refresh failures are only logged
	// when the queue is disabled.
	var queueClient *amqp.Client
	var publisher portssvc.RecomputePublisher
	if cfg.AMQPURL != "" {
		queueClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to connect to AMQP broker", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer queueClient.Close()
		publisher = queueClient
		logger.Info("Recompute queue connected", slog.String("queue", cfg.AMQPQueue))
	}

	repos := pgsql.NewRepositoryProvider(dbPool, otpStore)
	serviceContainer := services.NewServiceContainer(cfg, repos, publisher)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if queueClient != nil {
		recomputeWorker := worker.NewRecomputeWorker(queueClient, serviceContainer.Budget, serviceContainer.Cashflow, logger)
		go func() {
			if err := recomputeWorker.Run(ctx); err != nil {
				logger.Error("Recompute worker stopped", slog.String("error", err.Error()))
			}
		}()
	}

	posthogClient := utils.InitializePosthogClient(cfg.PostHogAPIKey, cfg.PostHogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.PosthogMiddleware(posthogClient))
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped.")
}

// runMigrations applies pending schema migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

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

// corsConfig builds the CORS policy. Only the configured frontend origin is
// allowed; everything is open in development when no origin is set.
func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if cfg.FrontendBaseURL != "" {
		corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}
