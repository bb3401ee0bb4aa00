package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartAfterShutdown(t *testing.T) {
	a := newTestAPI(t, false)
	a.server.Addr = "127.0.0.1:0"

	require.NoError(t, a.Shutdown(context.Background()))
	require.NoError(t, a.Start())
}
