package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

const APIKeyEnv = "GOOGLE_GEMINI_API_KEY"

var ErrEmptyResponse = errors.New("model returned no content")

type AIClient struct {
	client *genai.Client
	cfg    config.LLMConfig
	logger *slog.Logger
}

func NewAIClient(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*AIClient, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "NewAIClient")
	defer span.End()

	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		err := fmt.Errorf("%s: %w", APIKeyEnv, types.ErrNoAPIKey)
		span.RecordError(err)
		span.SetStatus(codes.Error, "API key not set")
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create Gemini client")
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	span.SetStatus(codes.Ok, "AI client created successfully")
	return &AIClient{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// GenerationConfig maps the llm config section onto genai parameters.
func GenerationConfig(cfg config.LLMConfig) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
	if cfg.Temperature > 0 {
		gc.Temperature = genai.Ptr(cfg.Temperature)
	}
	if cfg.TopP > 0 {
		gc.TopP = genai.Ptr(cfg.TopP)
	}
	if cfg.TopK > 0 {
		gc.TopK = genai.Ptr(cfg.TopK)
	}
	return gc
}

func (ai *AIClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "GenerateContent", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", ai.cfg.Model),
	))
	defer span.End()

	result, err := ai.client.Models.GenerateContent(ctx, ai.cfg.Model, genai.Text(prompt), GenerationConfig(ai.cfg))
	if err != nil {
		ai.logger.ErrorContext(ctx, "Gemini content generation failed", slog.String("model", ai.cfg.Model), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to generate content")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		span.SetStatus(codes.Error, "Empty response")
		return "", ErrEmptyResponse
	}
	span.SetAttributes(attribute.Int("response.length", len(text)))
	span.SetStatus(codes.Ok, "Content generated")
	return text, nil
}

// AnalyzeImage sends the prompt and the image in a single user turn to the
// vision model.
func (ai *AIClient) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "AnalyzeImage", trace.WithAttributes(
		attribute.Int("image.bytes", len(image)),
		attribute.String("image.mime", mimeType),
		attribute.String("model", ai.cfg.VisionModel),
	))
	defer span.End()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	result, err := ai.client.Models.GenerateContent(ctx, ai.cfg.VisionModel, contents, GenerationConfig(ai.cfg))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to analyze image")
		return "", fmt.Errorf("failed to analyze image: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	span.SetStatus(codes.Ok, "Image analyzed")
	return text, nil
}

func (ai *AIClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "EmbedText", trace.WithAttributes(
		attribute.Int("text.length", len(text)),
		attribute.String("model", ai.cfg.EmbeddingModel),
	))
	defer span.End()

	result, err := ai.client.Models.EmbedContent(ctx, ai.cfg.EmbeddingModel, genai.Text(text), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to embed text")
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		span.SetStatus(codes.Error, "Empty embedding")
		return nil, ErrEmptyResponse
	}
	return result.Embeddings[0].Values, nil
}
