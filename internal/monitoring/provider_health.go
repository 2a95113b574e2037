package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const healthCheckTimeout = 10 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorProviderHealth pings the provider once immediately and then on every
// tick, storing the outcome in healthy. It returns when ctx is cancelled.
func MonitorProviderHealth(ctx context.Context, pinger Pinger, healthy *atomic.Bool, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	checkProvider(ctx, pinger, healthy, true)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkProvider(ctx, pinger, healthy, false)
		}
	}
}

// checkProvider logs state changes only, plus any failure on the first check.
func checkProvider(ctx context.Context, pinger Pinger, healthy *atomic.Bool, first bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	err := pinger.Ping(ctx)
	wasHealthy := healthy.Swap(err == nil)
	switch {
	case err != nil && (wasHealthy || first):
		slog.Warn("[HealthCheck] Provider is unhealthy",
			slog.String("error", err.Error()))
	case err == nil && !wasHealthy:
		slog.Info("[HealthCheck] Provider is healthy")
	}
}
