package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	cfg, err := LoadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.HTTPPort)
	assert.Equal(t, "sri_lanka_tourism", cfg.Repositories.Postgres.DB)

	assert.Equal(t, 120*time.Second, cfg.Bridge.ChatTimeout)
	assert.Equal(t, 5*time.Second, cfg.Bridge.ShutdownTimeout)
	assert.False(t, cfg.Bridge.CancelOnTimeout)

	assert.Equal(t, 5, cfg.RAG.MaxSourceDocs)
	assert.Equal(t, 1000, cfg.RAG.ChunkSize)
	assert.Equal(t, 200, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 168*time.Hour, cfg.RAG.EmbeddingCacheTTL)

	assert.Equal(t, int32(2048), cfg.LLM.MaxOutputTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Contains(t, cfg.LLM.SystemPrompt, "Sri Lanka Tourism Assistant")

	assert.Equal(t, "http://api.aviationstack.com/v1", cfg.Flight.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Flight.Timeout)
}
