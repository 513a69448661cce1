//go:build integration

package generativeAI

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
)

func TestMain(m *testing.M) {
	if os.Getenv(APIKeyEnv) == "" {
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func newIntegrationClient(t *testing.T) *AIClient {
	t.Helper()
	cfg, err := config.LoadEmbedded()
	require.NoError(t, err)
	client, err := NewAIClient(context.Background(), cfg.LLM, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return client
}

func TestAIClient_GenerateContent_Integration(t *testing.T) {
	client := newIntegrationClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	response, err := client.GenerateContent(ctx, "In one word, what is the capital city of Sri Lanka's Western Province?")
	require.NoError(t, err)
	assert.True(t, strings.Contains(strings.ToLower(response), "colombo"), response)
}

func TestAIClient_EmbedText_Integration(t *testing.T) {
	client := newIntegrationClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	vec, err := client.EmbedText(ctx, "Sigiriya rock fortress")
	require.NoError(t, err)
	assert.Len(t, vec, 768)
}
