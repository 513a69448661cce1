package generativeAI

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

// Minimal PNG signature plus IHDR start, enough for content sniffing.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func TestDecodeImage(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString(pngHeader)

	t.Run("data URL keeps declared type", func(t *testing.T) {
		data, mime, err := DecodeImage("data:image/jpeg;base64," + raw)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mime)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("raw base64 is sniffed", func(t *testing.T) {
		data, mime, err := DecodeImage(raw)
		require.NoError(t, err)
		assert.Equal(t, "image/png", mime)
		assert.Len(t, data, len(pngHeader))
	})

	t.Run("rejects", func(t *testing.T) {
		for name, in := range map[string]string{
			"empty":          "  ",
			"not base64":     "%%%",
			"no base64 flag": "data:image/png," + raw,
			"not an image":   base64.StdEncoding.EncodeToString([]byte("plain text here")),
			"missing comma":  "data:image/png;base64",
		} {
			_, _, err := DecodeImage(in)
			assert.ErrorIs(t, err, types.ErrInvalidImage, name)
		}
	})
}

func TestGenerationConfig(t *testing.T) {
	gc := GenerationConfig(config.LLMConfig{Temperature: 0.7, TopP: 0.95, TopK: 40, MaxOutputTokens: 2048})
	require.NotNil(t, gc.Temperature)
	assert.InDelta(t, 0.7, *gc.Temperature, 0.0001)
	assert.InDelta(t, 40, *gc.TopK, 0.0001)
	assert.Equal(t, int32(2048), gc.MaxOutputTokens)

	gc = GenerationConfig(config.LLMConfig{})
	assert.Nil(t, gc.Temperature)
	assert.Nil(t, gc.TopP)
}

func TestNewAIClient_MissingKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	_, err := NewAIClient(t.Context(), config.LLMConfig{}, nil)
	assert.ErrorIs(t, err, types.ErrNoAPIKey)
}

func TestEncodeImageFile(t *testing.T) {
	dir := t.TempDir()

	img := filepath.Join(dir, "sigiriya.png")
	require.NoError(t, os.WriteFile(img, pngHeader, 0o644))
	encoded, err := EncodeImageFile(img)
	require.NoError(t, err)

	data, mime, err := DecodeImage(encoded)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngHeader, data)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("not an image"), 0o644))
	_, err = EncodeImageFile(txt)
	assert.ErrorIs(t, err, types.ErrInvalidImage)

	_, err = EncodeImageFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
