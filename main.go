package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/handlers"
	"storefront/logger"
	"storefront/repository"
	"storefront/services"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
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
		return fmt.Errorf("load config: %w", err)
	}

	format := cfg.Log.Format
	if cfg.IsProduction() {
		format = "json"
	}
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: format,
		Output: cfg.Log.Output,
	})
	defer log.Sync()

	ctx := context.Background()
	store, closer, err := openPersistence(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open persistence", zap.String("driver", cfg.Persistence.Driver), zap.Error(err))
		return fmt.Errorf("open persistence: %w", err)
	}
	defer closer.Close()
	log.Info("persistence ready", zap.String("driver", cfg.Persistence.Driver))

	sR, err := repository.NewSessionRepository(store, log)
	if err != nil {
		return fmt.Errorf("session repository: %w", err)
	}
	cartR, err := repository.NewCartRepository(store, log)
	if err != nil {
		return fmt.Errorf("cart repository: %w", err)
	}
	credR, err := repository.NewCredentialRepository(log)
	if err != nil {
		return fmt.Errorf("credential repository: %w", err)
	}
	catR, err := repository.NewCatalogRepository(cfg.Catalog.BaseURL, &http.Client{Timeout: cfg.Catalog.Timeout}, log)
	if err != nil {
		return fmt.Errorf("catalog repository: %w", err)
	}

	us, err := services.NewSessionService(ctx, sR, credR, services.NewFormValidator(), log)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	cs, err := services.NewCartService(ctx, cartR, log)
	if err != nil {
		return fmt.Errorf("restore cart: %w", err)
	}
	cas, err := services.NewCatalogService(catR, log)
	if err != nil {
		return fmt.Errorf("catalog service: %w", err)
	}

	ha := handlers.NewHandler(handlers.HandlerParams{
		SessionService: us,
		CartService:    cs,
		CatalogService: cas,
		Guard:          services.NewRouteGuard(cfg.Guard.ProtectedPaths),
		Logger:         log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      ha.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("app", cfg.App.Name), zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			log.Error("server stopped", zap.Error(err))
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openPersistence(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Persistence, io.Closer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.Persistence.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := sql.Open(cfg.Persistence.Driver, cfg.Persistence.DSN)
		if err != nil {
			return nil, nil, err
		}
		p, err := repository.NewSQLPersistence(ctx, db, log)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return p, db, nil
	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		p, err := repository.NewRedisPersistence(ctx, rdb, log)
		if err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return p, rdb, nil
	default:
		return repository.NewMemoryPersistence(), nopCloser{}, nil
	}
}
