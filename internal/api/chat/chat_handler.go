package chat

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/api"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

type HandlerImpl struct {
	service Service
	bridge  *bridge.Bridge
	timeout time.Duration
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, b *bridge.Bridge, timeout time.Duration, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		bridge:  b,
		timeout: timeout,
		logger:  logger,
	}
}

// Chat serves POST /api/v1/chat. The request goroutine blocks on the bridge
// until the answer is ready or the chat timeout expires.
func (h *HandlerImpl) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "Chat", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/chat"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Chat"))

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid chat request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" && req.Image == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "message or image is required")
		return
	}

	resp, err := bridge.Run(ctx, h.bridge, func(ctx context.Context) (*types.ChatResponse, error) {
		return h.service.ProcessQuery(ctx, req)
	}, h.timeout)
	if err != nil {
		status := api.StatusFromError(err)
		l.ErrorContext(ctx, "Chat request failed", slog.Int("status", status), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat request failed")
		api.ErrorResponse(w, r, status, api.PublicMessage(status, err))
		return
	}

	span.SetAttributes(
		attribute.String("chat.kind", string(resp.Kind)),
		attribute.Int64("chat.latency_ms", resp.LatencyMs),
	)
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

func (h *HandlerImpl) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "session id is required")
		return
	}
	h.service.ClearSession(sessionID)
	h.logger.InfoContext(r.Context(), "Chat session cleared", slog.String("session_id", sessionID))
	api.WriteJSONResponse(w, r, http.StatusNoContent, nil)
}

// GetHistory serves GET /api/v1/chat/{sessionID}/history from the
// persisted interactions.
func (h *HandlerImpl) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	history, err := bridge.Run(r.Context(), h.bridge, func(ctx context.Context) ([]types.ChatInteraction, error) {
		return h.service.History(ctx, sessionID)
	}, h.timeout)
	if err != nil {
		status := api.StatusFromError(err)
		api.ErrorResponse(w, r, status, api.PublicMessage(status, err))
		return
	}
	if history == nil {
		history = []types.ChatInteraction{}
	}
	api.WriteJSONResponse(w, r, http.StatusOK, history)
}
