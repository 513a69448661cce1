package generativeAI

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

const ImageAnalysisPrompt = `Analyze this image in the context of Sri Lankan tourism. If it shows a landmark,
destination, food, or cultural element from Sri Lanka, identify it and provide relevant
information. If it's not related to Sri Lanka, briefly describe what you see and mention
that you specialize in Sri Lankan tourism information.`

// DecodeImage accepts raw base64 or a "data:<mime>;base64,<payload>" URL and
// returns the bytes with their MIME type.
func DecodeImage(encoded string) ([]byte, string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, "", types.ErrInvalidImage
	}

	var mimeType string
	if rest, ok := strings.CutPrefix(encoded, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", types.ErrInvalidImage
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", types.ErrInvalidImage, err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("%w: unsupported type %s", types.ErrInvalidImage, mimeType)
	}
	return data, mimeType, nil
}

// EncodeImageFile reads an image from disk and returns it as base64, the
// form DecodeImage accepts.
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return "", fmt.Errorf("%w: %s is not an image", types.ErrInvalidImage, path)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
