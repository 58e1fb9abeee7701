package main

import (
	"context"
	"log/slog"
	"os"

	"moviecast/cmd/internal/bootstrap"
	"moviecast/lambdaserver"
	"moviecast/pkg/config"
	"moviecast/pkg/metrics"

	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	logger := bootstrap.Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	if err := bootstrap.InitSentry(cfg); err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}

	// Registered for parity with the HTTP binary; there is no scrape
	// endpoint inside Lambda.
	metrics.Init()

	// The store client lives as long as the execution environment and is
	// reused by every invocation it serves.
	stores, err := bootstrap.OpenStores(context.Background(), cfg)
	if err != nil {
		slog.Error("Cannot open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	handler := lambdaserver.New(bootstrap.CastService(stores), logger)
	lambda.Start(handler.Handle)
}
