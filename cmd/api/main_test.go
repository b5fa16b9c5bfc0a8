package main

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"retail-customers/internal/config"
)

func TestRun_ReturnsStartupErrors(t *testing.T) {
	cfg := config.FromEnv()
	cfg.StorageDriver = "bogus"
	err := run(cfg, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "open storage") {
		t.Fatalf("expected open storage error, got %v", err)
	}
}
