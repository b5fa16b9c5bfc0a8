package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"retail-customers/internal/config"
	"retail-customers/internal/importer"
	"retail-customers/internal/logger"
	customersvc "retail-customers/internal/service/customer"
	"retail-customers/internal/storage"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a customer CSV file")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load(".env")
	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	lg := zl.Named("importer")

	if err := run(cfg, lg, filePath); err != nil {
		lg.Error("import failed", zap.Error(err))
		_ = zl.Sync()
		os.Exit(1)
	}
	_ = zl.Sync()
}

func run(cfg config.Config, lg *zap.Logger, filePath string) error {
	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, lg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	svc := customersvc.New(store.Repo, lg.Named("service"), nil)
	imp := importer.NewCSVImporter(f, svc, lg)

	start := time.Now()
	report, err := imp.Run(ctx)
	if err != nil {
		return fmt.Errorf("after %d imported: %w", report.Imported, err)
	}

	for _, rej := range report.Rejected {
		fmt.Printf("rejected %s\n", rej.Error())
	}
	fmt.Printf("Imported %d customers (%d rejected) into %s storage in %s\n",
		report.Imported, len(report.Rejected), store.Driver, time.Since(start).Truncate(time.Millisecond))
	return nil
}
