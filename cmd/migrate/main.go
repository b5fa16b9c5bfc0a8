package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"retail-customers/internal/config"
	"retail-customers/internal/db"
	"retail-customers/internal/logger"
	"retail-customers/internal/migrate"
)

func main() {
	var (
		down        int
		showVersion bool
	)
	flag.IntVar(&down, "down", 0, "Roll back this many migrations instead of applying")
	flag.BoolVar(&showVersion, "version", false, "Print the current schema version and exit")
	flag.Parse()

	cfg := config.Load(".env")
	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	lg := zl.Named("migrate")

	if err := run(cfg, lg, down, showVersion); err != nil {
		lg.Error("migrate failed", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	_ = zl.Sync()
}

func run(cfg config.Config, lg *zap.Logger, down int, showVersion bool) error {
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	switch {
	case showVersion:
		v, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		lg.Info("schema version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case down > 0:
		if err := migrate.Rollback(ctx, pool, down); err != nil {
			return fmt.Errorf("rollback migrations: %w", err)
		}
		lg.Info("migrations rolled back", zap.Int("steps", down))
	default:
		if err := migrate.Apply(ctx, pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		lg.Info("migrations applied")
	}
	return nil
}
