package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatedPinger struct {
	release chan struct{}
}

func (p *gatedPinger) Ping(ctx context.Context) error {
	select {
	case <-p.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestStartProviderMonitor(t *testing.T) {
	t.Run("unhealthy until the first ping succeeds", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pinger := &gatedPinger{release: make(chan struct{})}

		healthy := startProviderMonitor(ctx, pinger, time.Hour)
		require.NotNil(t, healthy)
		assert.False(t, healthy.Load())

		close(pinger.release)
		assert.Eventually(t, healthy.Load, time.Second, 5*time.Millisecond)
	})

	t.Run("zero interval disables the monitor", func(t *testing.T) {
		assert.Nil(t, startProviderMonitor(context.Background(), &gatedPinger{}, 0))
	})
}
