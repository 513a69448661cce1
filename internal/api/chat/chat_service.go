package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-tourism-chatbot/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/api/flight"
	generativeAI "github.com/FACorreiaa/go-tourism-chatbot/internal/api/generative_ai"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// LLM is the subset of *generativeAI.AIClient the chat pipeline needs.
type LLM interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]types.ScoredDocument, error)
}

type FlightSearcher interface {
	Search(ctx context.Context, query string) (types.FlightSearch, []types.Flight, error)
}

type Service interface {
	ProcessQuery(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error)
	ClearSession(sessionID string)
	History(ctx context.Context, sessionID string) ([]types.ChatInteraction, error)
}

type ServiceImpl struct {
	llm           LLM
	retriever     Retriever
	flights       FlightSearcher
	repo          Repository
	memory        *Memory
	systemPrompt  string
	maxSourceDocs int
	logger        *slog.Logger
	metrics       *metrics.AppMetrics
}

// NewService wires the chat pipeline. flights and repo may be nil: flight
// questions then go through retrieval and interactions are not persisted.
func NewService(llm LLM, retriever Retriever, flights FlightSearcher, repo Repository, memory *Memory,
	llmCfg config.LLMConfig, ragCfg config.RAGConfig, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	if memory == nil {
		memory = NewMemory(ragCfg.MaxHistoryTokens, ragCfg.SessionTTL)
	}
	return &ServiceImpl{
		llm:           llm,
		retriever:     retriever,
		flights:       flights,
		repo:          repo,
		memory:        memory,
		systemPrompt:  llmCfg.SystemPrompt,
		maxSourceDocs: ragCfg.MaxSourceDocs,
		logger:        logger,
		metrics:       m,
	}
}

// ProcessQuery answers one chat turn. Flight questions are answered from the
// flight API; everything else goes through retrieval and the LLM, with an
// optional image analysed alongside retrieval.
func (s *ServiceImpl) ProcessQuery(ctx context.Context, req types.ChatRequest) (resp *types.ChatResponse, err error) {
	start := time.Now()
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	ctx, span := otel.Tracer("ChatService").Start(ctx, "ProcessQuery", trace.WithAttributes(
		attribute.String("session.id", req.SessionID),
		attribute.Bool("chat.has_image", req.Image != ""),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "ProcessQuery"), slog.String("session_id", req.SessionID))

	defer func() {
		kind := ""
		if resp != nil {
			resp.LatencyMs = time.Since(start).Milliseconds()
			kind = string(resp.Kind)
		}
		s.record(ctx, kind, err, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Chat query failed")
		}
	}()

	question := strings.TrimSpace(req.Message)
	if question == "" && req.Image == "" {
		return nil, types.ErrEmptyQuery
	}

	if question != "" && s.flights != nil && flight.IsFlightQuery(question) {
		l.InfoContext(ctx, "Handling flight query")
		resp, err = s.answerFlight(ctx, req.SessionID, question)
		if err != nil {
			return nil, err
		}
		s.remember(ctx, req.SessionID, question, resp, start)
		return resp, nil
	}

	var image []byte
	var mimeType string
	if req.Image != "" {
		image, mimeType, err = generativeAI.DecodeImage(req.Image)
		if err != nil {
			return nil, err
		}
	}

	var (
		analysis string
		docs     []types.ScoredDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	if image != nil {
		g.Go(func() error {
			prompt := generativeAI.ImageAnalysisPrompt
			if question != "" {
				prompt = question
			}
			a, err := s.llm.AnalyzeImage(gctx, prompt, image, mimeType)
			if err != nil {
				return fmt.Errorf("image analysis failed: %w", err)
			}
			analysis = a
			return nil
		})
	}
	if question != "" {
		g.Go(func() error {
			d, err := s.retriever.Retrieve(gctx, question, s.maxSourceDocs)
			if err != nil {
				return fmt.Errorf("retrieval failed: %w", err)
			}
			docs = d
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		l.ErrorContext(ctx, "Failed to prepare answer context", slog.Any("error", err))
		return nil, err
	}

	// An image without a question is answered by the analysis alone.
	if question == "" {
		resp = &types.ChatResponse{
			SessionID:     req.SessionID,
			Answer:        analysis,
			Kind:          types.KindRAG,
			ImageAnalysis: analysis,
		}
		s.remember(ctx, req.SessionID, "[image]", resp, start)
		return resp, nil
	}

	userTurn := question
	if analysis != "" {
		userTurn = question + "\n\nHere's what I see in the image:\n" + analysis
	}
	prompt := BuildPrompt(s.systemPrompt, s.memory.History(req.SessionID), docs, userTurn)

	answer, err := s.llm.GenerateContent(ctx, prompt)
	if err != nil {
		l.ErrorContext(ctx, "LLM generation failed", slog.Any("error", err))
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	resp = &types.ChatResponse{
		SessionID:     req.SessionID,
		Answer:        answer,
		Kind:          types.KindRAG,
		Sources:       toSources(docs),
		ImageAnalysis: analysis,
	}
	s.remember(ctx, req.SessionID, userTurn, resp, start)
	span.SetAttributes(attribute.Int("chat.sources", len(docs)))
	l.InfoContext(ctx, "Chat query answered", slog.Int("sources", len(docs)))
	return resp, nil
}

func (s *ServiceImpl) answerFlight(ctx context.Context, sessionID, question string) (*types.ChatResponse, error) {
	_, flights, err := s.flights.Search(ctx, question)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "Flight search failed", slog.Any("error", err))
		return &types.ChatResponse{
			SessionID: sessionID,
			Answer:    "I couldn't find any flight information. " + err.Error(),
			Kind:      types.KindFlight,
		}, nil
	}
	return &types.ChatResponse{
		SessionID: sessionID,
		Answer:    flight.FormatFlights(flights),
		Kind:      types.KindFlight,
	}, nil
}

// remember updates the conversation memory and persists the interaction with
// the latency measured from start. Persistence failures are logged and do not
// fail the turn.
func (s *ServiceImpl) remember(ctx context.Context, sessionID, question string, resp *types.ChatResponse, start time.Time) {
	now := time.Now()
	resp.LatencyMs = now.Sub(start).Milliseconds()
	s.memory.Append(sessionID,
		types.ConversationMessage{Role: types.RoleUser, Content: question, Timestamp: now},
		types.ConversationMessage{Role: types.RoleAssistant, Content: resp.Answer, Timestamp: now},
	)
	if s.repo == nil {
		return
	}
	if _, err := s.repo.SaveInteraction(ctx, types.ChatInteraction{
		SessionID:   sessionID,
		Question:    question,
		Answer:      resp.Answer,
		Kind:        resp.Kind,
		SourceCount: len(resp.Sources),
		LatencyMs:   resp.LatencyMs,
	}); err != nil {
		s.logger.WarnContext(ctx, "Failed to persist chat interaction", slog.Any("error", err))
	}
}

func (s *ServiceImpl) record(ctx context.Context, kind string, err error, d time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind), attribute.String("outcome", outcome))
	s.metrics.ChatRequestsTotal.Add(ctx, 1, attrs)
	s.metrics.ChatDurationSeconds.Record(ctx, d.Seconds(), attrs)
}

func (s *ServiceImpl) ClearSession(sessionID string) {
	s.memory.Clear(sessionID)
}

func (s *ServiceImpl) History(ctx context.Context, sessionID string) ([]types.ChatInteraction, error) {
	if s.repo == nil {
		return nil, types.ErrNotFound
	}
	return s.repo.ListInteractions(ctx, sessionID, 0)
}

// BuildPrompt lays out the system prompt, prior turns, retrieved context and
// the question as one text prompt.
func BuildPrompt(systemPrompt string, history []types.ConversationMessage, docs []types.ScoredDocument, question string) string {
	var b strings.Builder
	if systemPrompt != "" {
		b.WriteString(strings.TrimSpace(systemPrompt))
		b.WriteString("\n\n")
	}
	if len(history) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, msg := range history {
			role := "User"
			if msg.Role == types.RoleAssistant {
				role = "Assistant"
			}
			fmt.Fprintf(&b, "%s: %s\n", role, msg.Content)
		}
		b.WriteString("\n")
	}
	b.WriteString("Context:\n")
	if len(docs) == 0 {
		b.WriteString("(no matching documents)\n")
	}
	for i, d := range docs {
		fmt.Fprintf(&b, "[%d] %s (%s)\n%s\n\n", i+1, d.Title, d.Category, d.Content)
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func toSources(docs []types.ScoredDocument) []types.Source {
	if len(docs) == 0 {
		return nil
	}
	out := make([]types.Source, len(docs))
	for i, d := range docs {
		out[i] = types.Source{Title: d.Title, Category: string(d.Category), Similarity: d.Similarity}
	}
	return out
}
