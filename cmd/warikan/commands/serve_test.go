package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/susu3304/warikan/internal/config"
	"github.com/susu3304/warikan/internal/logger"
)

func TestServeStopsOnCancelledContext(t *testing.T) {
	cfg, err := config.FromEnv(func(key string) string {
		return map[string]string{"WEB_BIND": "127.0.0.1:0"}[key]
	})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		done := make(chan error, 1)
		go func() { done <- serve(ctx, cfg, logger.Nop()) }()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("serve did not return after cancellation")
		}
	}
}
