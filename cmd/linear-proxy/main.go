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

	"github.com/wjct-public-media/delivery-dashboard/internal/config"
	"github.com/wjct-public-media/delivery-dashboard/internal/proxy"
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
	if cfg.APIKey == "" {
		logger.Fatal("LINEAR_API_KEY is required for the proxy")
	}
	if len(cfg.AllowedOrigins) == 0 {
		logger.Fatal("ALLOWED_ORIGINS is required for the proxy")
	}

	handler := proxy.NewHandler(cfg.UpstreamURL, cfg.APIKey, cfg.AllowedOrigins,
		&http.Client{Timeout: 30 * time.Second}, logger)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/*", handler)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ProxyPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("proxy listening",
			zap.Int("port", cfg.ProxyPort),
			zap.String("upstream", cfg.UpstreamURL),
			zap.Strings("origins", cfg.AllowedOrigins))
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
