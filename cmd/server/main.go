package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/finbook/internal/adapter/http"
	"github.com/iho/finbook/internal/adapter/http/handler"
	"github.com/iho/finbook/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/finbook/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/finbook/internal/adapter/repository/redis"
	"github.com/iho/finbook/internal/infrastructure/auth"
	"github.com/iho/finbook/internal/infrastructure/config"
	"github.com/iho/finbook/internal/infrastructure/idgen"
	"github.com/iho/finbook/internal/infrastructure/logger"
	"github.com/iho/finbook/internal/infrastructure/persistence"
	"github.com/iho/finbook/internal/infrastructure/postgres"
	"github.com/iho/finbook/internal/infrastructure/redis"
	"github.com/iho/finbook/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to the configured storage backend
	var (
		store       usecase.BlobStore
		pool        *pgxpool.Pool
		redisClient *goredis.Client
	)

	switch cfg.StorageBackend {
	case "postgres":
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pool.Close()
		log.Info().Msg("connected to postgres")

		store = postgresRepo.NewBlobStore(pool)
	case "redis":
		redisClient, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		store = redisRepo.NewBlobStore(redisClient)
	default:
		log.Fatal().Str("backend", cfg.StorageBackend).Msg("unknown storage backend")
	}

	// Start the write-behind persistence writer
	writer := persistence.NewWriter(persistence.Config{
		Store:          store,
		Logger:         appLogger,
		MaxElapsedTime: cfg.SaveMaxElapsedTime,
		DrainGrace:     cfg.SaveDrainTimeout,
		OnError: func(key string, err error) {
			appLogger.Error().Err(err).Str("key", key).Msg("collection save lost after retries")
		},
	})

	writerCtx, stopWriter := context.WithCancel(ctx)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		if err := writer.Start(writerCtx); err != nil && err != context.Canceled {
			appLogger.Error().Err(err).Msg("persistence writer stopped")
		}
	}()

	// Initialize use cases: collections are loaded into memory up front
	idGen := idgen.NewULIDGenerator()

	ledgerUC, err := usecase.NewLedgerUseCase(ctx, store, writer, idGen)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load ledger collections")
	}

	tourUC, err := usecase.NewTourUseCase(ctx, store, writer, idGen)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tours")
	}

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(ledgerUC)
	groupHandler := handler.NewGroupHandler(ledgerUC)
	tourHandler := handler.NewTourHandler(tourUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Optional auth and idempotency
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go rateLimiter.RunCleanup(ctx, cfg.RateLimitCleanupInterval)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		GroupHandler:       groupHandler,
		TourHandler:        tourHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		JWTManager:         jwtManager,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("backend", cfg.StorageBackend).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown: stop accepting requests, then drain pending saves
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	stopWriter()
	<-writerDone

	log.Info().Msg("server stopped")
}
