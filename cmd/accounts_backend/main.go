package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/current_account_engine/internal/adapters/database/memory"
	"github.com/SscSPs/current_account_engine/internal/adapters/database/pgsql"
	portsrepo "github.com/SscSPs/current_account_engine/internal/core/ports/repositories"
	"github.com/SscSPs/current_account_engine/internal/core/services"
	"github.com/SscSPs/current_account_engine/internal/handlers"
	"github.com/SscSPs/current_account_engine/internal/middleware"
	"github.com/SscSPs/current_account_engine/internal/platform/config"
	"github.com/SscSPs/current_account_engine/pkg/database"
	"github.com/SscSPs/current_account_engine/pkg/wal"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	rateLimiter, closeLimiter, err := newRateLimiter(cfg, logger)
	if err != nil {
		return err
	}
	defer closeLimiter()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("set trusted proxies: %w", err)
	}

	serviceContainer := services.NewServiceContainer(cfg, repos)
	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// openStore builds the repositories for the configured driver and returns a func releasing them.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		// Room for a full batch plus a few concurrent single requests.
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.WithMaxConns(int32(cfg.BatchWorkers+4)))
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil

	default:
		var options []memory.Option
		closeWAL := func() {}
		if cfg.WALPath != "" {
			log, err := wal.Open(cfg.WALPath)
			if err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
			options = append(options, memory.WithWAL(log))
			closeWAL = func() {
				if err := log.Close(); err != nil {
					logger.Error("Error closing WAL", slog.String("error", err.Error()))
				}
			}
			logger.Info("Replaying write-ahead log", slog.String("path", cfg.WALPath))
		}
		store, err := memory.NewStore(options...)
		if err != nil {
			closeWAL()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return memory.NewRepositoryProvider(store), closeWAL, nil
	}
}

// newRateLimiter returns nil when RATE_LIMIT is empty.
func newRateLimiter(cfg *config.Config, logger *slog.Logger) (*limiter.Limiter, func(), error) {
	if cfg.RateLimit == "" {
		return nil, func() {}, nil
	}
	var client *redis.Client
	if cfg.RateLimitRedisURL != "" {
		opts, err := redis.ParseURL(cfg.RateLimitRedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse RATE_LIMIT_REDIS_URL: %w", err)
		}
		client = redis.NewClient(opts)
	}
	l, err := middleware.NewRateLimiter(cfg.RateLimit, client)
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, nil, err
	}
	logger.Info("Rate limiting enabled", slog.String("rate", cfg.RateLimit), slog.Bool("shared", client != nil))
	return l, func() {
		if client != nil {
			_ = client.Close()
		}
	}, nil
}
