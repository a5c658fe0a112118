package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"dailyfuel/internal/backend"
	"dailyfuel/internal/config"
	"dailyfuel/internal/core"
	apphttp "dailyfuel/internal/http"
	applog "dailyfuel/internal/log"
	"dailyfuel/internal/services"
)

func main() {
	// .env is optional; real environment variables always win
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     cfg.LogLevel,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger.Logger).CreateStore(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			"error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ledger := services.NewLedger(ctx, result.Store)
	registry := services.NewRegistry(ctx, result.Store)
	prefs := services.NewPreferences(ctx, result.Store)

	// The theme is the one cross-cutting signal the styling layer consumes
	prefs.OnThemeChange(func(theme core.Theme) {
		logger.Info("Theme applied", "theme", string(theme))
	})

	srv := apphttp.NewServer(":"+cfg.Port, ledger, registry, prefs)
	srv.Handler = applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(srv.Handler)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting dailyfuel server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"expenses", ledger.Size())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()

	if result.Cleanup != nil {
		if cerr := result.Cleanup(); cerr != nil {
			logger.Error("Backend cleanup error", "error", cerr)
		}
	}

	if err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
