// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/paybadge/paybadge/internal/adapters/http"
	"github.com/paybadge/paybadge/internal/adapters/postgres"
	"github.com/paybadge/paybadge/internal/adapters/rates"
	"github.com/paybadge/paybadge/internal/config"
	"github.com/paybadge/paybadge/internal/middleware"
	"github.com/paybadge/paybadge/internal/services/presets"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	presetSvc, err := presets.Load(cfg.PresetsFile)
	if err != nil {
		logger.Error("failed to load presets", "file", cfg.PresetsFile, "error", err)
		os.Exit(1)
	}

	rateClient := rates.NewClient(cfg.RatesBaseURL, cfg.RatesTTL)
	rateClient.StartCleanup(ctx)

	var recorder httpadapter.RenderRecorder
	if cfg.DatabaseURL != "" {
		store, err := postgres.NewStore(cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		recorder = store.RenderRepository()
		logger.Info("render analytics enabled")
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, logger)
	defer rateLimiter.Stop()

	router := httpadapter.NewRouter(httpadapter.RouterConfig{
		Rates:         rateClient,
		Presets:       presetSvc,
		Recorder:      recorder,
		RateLimiter:   rateLimiter,
		BaseURL:       cfg.BaseURL,
		AllowedOrigin: cfg.AllowedOrigin,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("paybadge server started",
			"port", cfg.Port,
			"presets", len(presetSvc.List()),
			"analytics", recorder != nil,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
