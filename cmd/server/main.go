package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cooktimer/backend/config"
	httpDelivery "github.com/cooktimer/backend/internal/delivery/http"
	"github.com/cooktimer/backend/internal/domain"
	"github.com/cooktimer/backend/internal/infrastructure/cache"
	"github.com/cooktimer/backend/internal/infrastructure/catalog"
	"github.com/cooktimer/backend/internal/infrastructure/favorites"
	"github.com/cooktimer/backend/internal/infrastructure/logging"
	"github.com/cooktimer/backend/internal/infrastructure/notify"
	"github.com/cooktimer/backend/internal/timer"
	"github.com/cooktimer/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Encoding)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting CookTimer backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Initialize infrastructure dependencies
	repo, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	foods, textures, methods := repo.Counts()
	logger.Info("catalog loaded",
		zap.String("path", cfg.Catalog.Path),
		zap.Int("foods", foods),
		zap.Int("textures", textures),
		zap.Int("methods", methods))

	memoryCache := cache.NewMemoryCache(ctx, cfg.Cache.CleanupInterval)
	logger.Info("cache ready", zap.String("type", cfg.Cache.Type), zap.Duration("ttl", cfg.Cache.TTL))

	store, closeStore, err := openFavorites(cfg.Favorites)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("favorites store ready", zap.String("driver", cfg.Favorites.Driver))

	// Initialize usecase layer
	estimates := usecase.NewEstimateService(repo, memoryCache, logger,
		usecase.EstimateServiceConfig{CacheTTL: cfg.Cache.TTL})
	timers := usecase.NewTimerService(estimates, logger, usecase.TimerServiceConfig{
		MaxTimers:         cfg.Timer.MaxTimers,
		AlmostDoneSeconds: cfg.Timer.AlmostDoneSeconds,
	})
	favoritesService := usecase.NewFavoritesService(store, estimates, logger)

	supervisor := timer.NewSupervisor(timers, notify.NewLogNotifier(logger),
		timer.WithTickInterval(cfg.Timer.TickInterval),
		timer.WithLogger(logger))
	supervisor.Start(ctx)
	defer supervisor.Stop()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(repo, estimates, timers, favoritesService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("starting server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// openFavorites builds the configured favorites store and its cleanup func
func openFavorites(cfg config.FavoritesConfig) (domain.FavoriteRepository, func(), error) {
	if cfg.Driver == "memory" {
		return favorites.NewMemoryStore(), func() {}, nil
	}

	store, err := favorites.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}
