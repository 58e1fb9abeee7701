package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviecast/cmd/internal/bootstrap"
	"moviecast/httpserver"
	"moviecast/pkg/config"
	"moviecast/pkg/metrics"
	"moviecast/pkg/sentry"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// run owns every resource of the process so deferred cleanup, including
// the sentry flush, happens before main exits.
func run() error {
	logger := bootstrap.Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := bootstrap.InitSentry(cfg); err != nil {
		return fmt.Errorf("cannot init sentry: %w", err)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cannot open %s store: %w", cfg.StoreDriver, err)
	}
	defer stores.Close()

	server := httpserver.Default(cfg)
	server.Logger = logger
	server.CastService = bootstrap.CastService(stores)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server started!", "addr", server.Addr, "driver", cfg.StoreDriver)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sentry.Error(fmt.Errorf("server start: %w", err))
		return err
	}
	return nil
}
