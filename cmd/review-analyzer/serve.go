package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/spacesedan/review-analyzer/config"
	"github.com/spacesedan/review-analyzer/internal/api"
	"github.com/spacesedan/review-analyzer/internal/monitoring"
)

const shutdownTimeout = 10 * time.Second

func serveCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "port to listen on",
				Value: cfg.Port,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return serve(ctx, cfg, cmd.String("port"))
		},
	}
}

func serve(ctx context.Context, cfg config.Config, port string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyzer, client := newAnalyzer(cfg, false)

	var providerHealthy *atomic.Bool
	if client != nil {
		providerHealthy = startProviderMonitor(ctx, client, cfg.HealthCheckInterval)
	}

	srv := api.NewServer(analyzer, cfg.CORSAllowedOrigins, client != nil, providerHealthy)
	httpServer := &http.Server{
		Addr:              net.JoinHostPort("", port),
		Handler:           srv.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Main] HTTP server listening",
			slog.String("addr", httpServer.Addr),
			slog.String("env", cfg.Env))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("[Main] Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// startProviderMonitor returns nil when interval disables monitoring. The flag
// stays false until the first Ping succeeds.
func startProviderMonitor(ctx context.Context, pinger monitoring.Pinger, interval time.Duration) *atomic.Bool {
	if interval <= 0 {
		return nil
	}
	healthy := &atomic.Bool{}
	go monitoring.MonitorProviderHealth(ctx, pinger, healthy, interval)
	return healthy
}
