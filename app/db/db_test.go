package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type flakyPinger struct {
	failures int
	calls    int
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForDB(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		p := &flakyPinger{failures: 2}
		assert.True(t, waitForDB(context.Background(), p, discard, 5, time.Millisecond))
		assert.Equal(t, 3, p.calls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		p := &flakyPinger{failures: 100}
		assert.False(t, waitForDB(context.Background(), p, discard, 3, time.Millisecond))
		assert.Equal(t, 3, p.calls)
	})

	t.Run("stops when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := &flakyPinger{failures: 100}
		assert.False(t, waitForDB(ctx, p, discard, 5, time.Hour))
		assert.Equal(t, 1, p.calls)
	})
}

func TestNewDatabaseConfig(t *testing.T) {
	cfg, err := config.LoadEmbedded()
	require.NoError(t, err)

	dbCfg, err := NewDatabaseConfig(&cfg, discard)
	require.NoError(t, err)

	u, err := url.Parse(dbCfg.ConnectionURL)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "localhost:5432", u.Host)
	assert.Equal(t, "/sri_lanka_tourism", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "10", u.Query().Get("connect_timeout"))

	_, err = NewDatabaseConfig(&config.Config{}, discard)
	assert.Error(t, err)
}

func TestRunMigrations_RejectsBadScheme(t *testing.T) {
	err := RunMigrations("mysql://root@localhost/db", discard)
	assert.ErrorIs(t, err, ErrInvalidDatabaseURL)
}
