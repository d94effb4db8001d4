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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/wjct-public-media/delivery-dashboard/internal/api"
	"github.com/wjct-public-media/delivery-dashboard/internal/api/linear"
	"github.com/wjct-public-media/delivery-dashboard/internal/config"
	"github.com/wjct-public-media/delivery-dashboard/internal/dashboard"
	"github.com/wjct-public-media/delivery-dashboard/internal/domain"
	"github.com/wjct-public-media/delivery-dashboard/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// run is the composition root: every dependency is created and wired
// here, then injected downward.
func run(cfg *config.Config, logger *zap.Logger) error {
	classifiers := service.NewClassifierHolder(loadClassifier(cfg, logger))

	if cfg.StatusMapPath != "" {
		watcher, err := config.NewStatusMapWatcher(cfg.StatusMapPath, classifiers.Set, logger)
		if err != nil {
			logger.Warn("status map watcher unavailable", zap.Error(err))
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	client := linear.NewClient(api.ClientConfig{
		Endpoint:      cfg.Endpoint,
		APIKey:        cfg.APIKey,
		TeamID:        cfg.TeamID,
		AssigneeEmail: cfg.AssigneeEmail,
	}, &http.Client{Timeout: 30 * time.Second}, logger)

	store := service.NewStore()
	fetcher := service.NewFetcher(client, store, logger)
	refresher := service.NewRefresher(fetcher, cfg.PollInterval, logger)
	refresher.Start()
	defer refresher.Stop()

	handler := dashboard.NewHandler(dashboard.HandlerConfig{
		Renderer:    dashboard.NewHTMLRenderer(),
		Snapshots:   store,
		Refresher:   refresher,
		Classifiers: classifiers,
		Logger:      logger,
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", zap.Int("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// loadClassifier builds the initial classifier from the configured
// mapping file, or from the substring fallback alone when there is none.
func loadClassifier(cfg *config.Config, logger *zap.Logger) *domain.Classifier {
	if cfg.StatusMapPath == "" {
		return domain.NewClassifier(nil)
	}
	mapping, err := config.LoadStatusMap(cfg.StatusMapPath)
	if err != nil {
		logger.Warn("status map unavailable, using fallback heuristics",
			zap.String("path", cfg.StatusMapPath), zap.Error(err))
		return domain.NewClassifier(nil)
	}
	logger.Info("status map loaded", zap.String("path", cfg.StatusMapPath), zap.Int("statuses", len(mapping)))
	return domain.NewClassifier(mapping)
}
