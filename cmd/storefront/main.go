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

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/mimoo-storefront/internal/cart"
	"github.com/nikolayk812/mimoo-storefront/internal/catalog"
	"github.com/nikolayk812/mimoo-storefront/internal/config"
	"github.com/nikolayk812/mimoo-storefront/internal/httpapi"
	"github.com/nikolayk812/mimoo-storefront/internal/migrations"
	"github.com/nikolayk812/mimoo-storefront/internal/port"
	"github.com/nikolayk812/mimoo-storefront/internal/repository"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("newLogger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("openStorage: %w", err)
	}
	defer closeStorage()

	registry := cart.NewRegistry(storage,
		cart.WithSlotPrefix(cfg.SlotKey),
		cart.WithEraseOnEmpty(cfg.EraseOnEmpty),
		cart.WithMaxSessions(cfg.MaxSessions),
		cart.WithLogger(logger),
	)

	handler := httpapi.NewHandler(registry, catalog.Default(), httpapi.Options{
		SessionCookie:    cfg.SessionCookie,
		SessionCookieTTL: cfg.SessionCookieTTL,
	}, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpapi.NewRouter(handler, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("srv.ListenAndServe: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown", zap.Error(err))
	}

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openStorage returns the slot storage for the configured backend. A nil
// storage means carts are not persisted at all.
func openStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (port.SlotStorage, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendNone:
		return nil, noop, nil

	case config.BackendMemory:
		return repository.NewMemorySlots(), noop, nil

	case config.BackendPostgres:
		if err := migrations.Run(cfg.DatabaseURL, logger); err != nil {
			return nil, noop, fmt.Errorf("migrations.Run: %w", err)
		}

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("pgxpool.New: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("pool.Ping: %w", err)
		}

		return repository.NewPostgresSlots(pool), pool.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		slots := repository.NewRedisSlots(client)

		// an unreachable store degrades to ephemeral carts
		if err := slots.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, carts will not persist", zap.Error(err))
		}

		return slots, func() { _ = client.Close() }, nil
	}

	return nil, noop, fmt.Errorf("storage backend[%s] is not supported", cfg.StorageBackend)
}
