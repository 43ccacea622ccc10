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

	"storefront_backend/internal/cart"
	"storefront_backend/internal/catalog"
	"storefront_backend/internal/checkout"
	"storefront_backend/internal/events"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/internal/http/router"
	"storefront_backend/internal/notification"
	"storefront_backend/internal/scheduler"
	"storefront_backend/platform/config"
	"storefront_backend/platform/db"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("invalid redis url", "error", err)
		panic("invalid redis url: " + err.Error())
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()

	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return redisClient.Ping(pingCtx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	confirmationScheduler, closeScheduler := initConfirmationScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to checkout events (not HTTP-facing)
	if confirmationScheduler != nil {
		notification.NewModule(eventBus, confirmationScheduler, log)
	} else {
		log.Warn("order confirmation emails disabled; no scheduler available")
	}

	catalogModule := catalog.NewModule(pool, val, log)
	cartModule := cart.NewModule(redisClient, cfg.CartTTL, catalogModule.Repository(), val, log)
	checkoutModule := checkout.NewModule(cfg, cartModule.Service(), catalogModule.Repository(), eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			cartModule,
			checkoutModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initConfirmationScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.ConfirmationScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; order confirmations disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize confirmation scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", lastErr)

		if attempt == attempts {
			break
		}
		// backoff grows quadratically with the attempt number
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*attempt) * baseDelay):
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
