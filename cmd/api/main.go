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

	"retail-customers/internal/config"
	"retail-customers/internal/httpserver"
	"retail-customers/internal/logger"
	"retail-customers/internal/metrics"
	customersvc "retail-customers/internal/service/customer"
	"retail-customers/internal/storage"
)

func main() {
	cfg := config.Load(".env")
	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	lg := zl.Named("api")

	if err := run(cfg, lg); err != nil {
		lg.Error("api stopped", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	_ = zl.Sync()
}

func run(cfg config.Config, lg *zap.Logger) error {
	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, lg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	m := metrics.New()
	customerService := customersvc.New(store.Repo, lg.Named("service"), m)

	srv, err := httpserver.New(cfg.HTTPAddr, lg, httpserver.Deps{
		CustomerSvc:  customerService,
		Store:        store,
		Metrics:      m,
		AllowOrigins: cfg.CORSAllowOrigins,
	})
	if err != nil {
		return fmt.Errorf("init server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-stopCh:
		lg.Info("shutting down", zap.String("signal", sig.String()))
	case runErr = <-serverErr:
		lg.Error("server error", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	} else {
		lg.Info("server stopped")
	}
	return runErr
}
