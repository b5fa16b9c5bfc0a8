package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"retail-customers/internal/config"
	"retail-customers/internal/logger"
	"retail-customers/internal/seed"
	customersvc "retail-customers/internal/service/customer"
	"retail-customers/internal/storage"
)

func main() {
	cfg := config.Load(".env")
	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	lg := zl.Named("seed")

	if err := run(cfg, lg); err != nil {
		lg.Error("seed failed", zap.Error(err))
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

	n, err := seed.Apply(ctx, customersvc.New(store.Repo, lg.Named("service"), nil), lg)
	if err != nil {
		return fmt.Errorf("seed apply: %w", err)
	}
	lg.Info("seed applied", zap.Int("customers", n), zap.String("driver", store.Driver))
	return nil
}
