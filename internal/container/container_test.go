package container

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
)

func TestBridgeOptions(t *testing.T) {
	cfg := config.BridgeConfig{
		DefaultTimeout:  50 * time.Millisecond,
		ShutdownTimeout: time.Second,
		StartTimeout:    time.Second,
		CancelOnTimeout: true,
	}
	b, err := bridge.New(BridgeOptions(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)...)
	require.NoError(t, err)
	defer b.Shutdown()

	canceled := make(chan struct{})
	_, err = b.Run(t.Context(), func(ctx context.Context) (any, error) {
		<-ctx.Done()
		close(canceled)
		return nil, ctx.Err()
	}, 0)
	assert.ErrorIs(t, err, bridge.ErrTimeout)

	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Fatal("timed out task was not cancelled")
	}
}

func TestBridgeOptions_ZeroValuesKeepDefaults(t *testing.T) {
	b, err := bridge.New(BridgeOptions(config.BridgeConfig{}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)...)
	require.NoError(t, err)
	defer b.Shutdown()
	assert.Equal(t, bridge.StateRunning, b.State())
}
