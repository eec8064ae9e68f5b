package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/pocketbank/internal/adapter/http"
	"github.com/iho/pocketbank/internal/adapter/http/handler"
	"github.com/iho/pocketbank/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/pocketbank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/pocketbank/internal/adapter/repository/redis"
	"github.com/iho/pocketbank/internal/infrastructure/config"
	"github.com/iho/pocketbank/internal/infrastructure/eventpublisher"
	"github.com/iho/pocketbank/internal/infrastructure/logger"
	"github.com/iho/pocketbank/internal/infrastructure/metrics"
	"github.com/iho/pocketbank/internal/infrastructure/postgres"
	"github.com/iho/pocketbank/internal/infrastructure/redis"
	"github.com/iho/pocketbank/internal/usecase"
)

const (
	sinkRedis = "redis"
	sinkLog   = "log"

	rateLimitCleanupInterval = 10 * time.Minute
	rateLimitIdle            = time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, redis.Config{
		URL:         cfg.RedisURL,
		PoolSize:    cfg.RedisPoolSize,
		DialTimeout: cfg.RedisDialTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txRepo := postgresRepo.NewTransactionRepository(pool)
	loanRepo := postgresRepo.NewLoanRepository(pool)
	fdRepo := postgresRepo.NewFixedDepositRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()
	numbers := postgresRepo.NewSequenceAccountNumberGenerator(pool)
	retrier := postgresRepo.NewRetrier(postgresRepo.RetryConfig{
		MaxRetries:      cfg.DatabaseRetryAttempts,
		InitialInterval: cfg.DatabaseRetryInterval,
	}).WithMetrics(m)

	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)

	// Use cases
	userUC := usecase.NewUserUseCase(txManager, userRepo, outboxRepo, auditRepo, idGen, m).
		WithHashCost(cfg.BcryptCost)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, userRepo, outboxRepo, auditRepo, idGen, numbers, m).
		WithRetrier(retrier)
	transactionUC := usecase.NewTransactionUseCase(txManager, accountRepo, txRepo, outboxRepo, idGen, m).
		WithRetrier(retrier)
	loanUC := usecase.NewLoanUseCase(txManager, loanRepo, userRepo, outboxRepo, auditRepo, transactionUC, idGen, m).
		WithRetrier(retrier)
	fdUC := usecase.NewFixedDepositUseCase(txManager, fdRepo, userRepo, outboxRepo, transactionUC, idGen, m).
		WithRetrier(retrier)
	reportUC := usecase.NewReportUseCase(userRepo, accountRepo, txRepo, loanRepo, cache, cfg.ReportCacheTTL, log.Logger, m)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, txRepo, ledgerRepo)

	// HTTP
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
		go rateLimiter.RunCleanup(ctx, rateLimitCleanupInterval, rateLimitIdle)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:         handler.NewUserHandler(userUC),
		AccountHandler:      handler.NewAccountHandler(accountUC),
		TransactionHandler:  handler.NewTransactionHandler(transactionUC),
		LoanHandler:         handler.NewLoanHandler(loanUC),
		FixedDepositHandler: handler.NewFixedDepositHandler(fdUC),
		AdminHandler: handler.NewAdminHandler(handler.AdminDeps{
			Accounts:       accountUC,
			Loans:          loanUC,
			Customers:      userUC,
			Transactions:   transactionUC,
			FixedDeposits:  fdUC,
			Reports:        reportUC,
			Reconciliation: reconciliationUC,
			Audit:          auditRepo,
		}),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
		Metrics:          m,
		MetricsHandler:   promhttp.Handler(),
		Logger:           log.Logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Outbox worker
	publisherLogger := log.Logger
	outboxPublisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  newEventSink(cfg, redisClient, publisherLogger),
		Logger:     &publisherLogger,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxInterval,
		Retention:  cfg.OutboxRetention,
	})

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := outboxPublisher.Start(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	cancelWorker()
	<-workerDone

	return nil
}

// newEventSink picks where outbox events go.
func newEventSink(cfg *config.Config, client goredis.Cmdable, l zerolog.Logger) eventpublisher.Publisher {
	if cfg.OutboxSink == sinkLog || client == nil {
		return eventpublisher.NewLogPublisher(l)
	}
	return eventpublisher.NewRedisStreamPublisher(client, cfg.OutboxStream, cfg.OutboxMaxLen)
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.HTTPShutdownTimeout > 0 {
		return cfg.HTTPShutdownTimeout
	}
	return 30 * time.Second
}
