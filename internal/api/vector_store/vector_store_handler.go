package vectorstore

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/api"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

const maxSearchResults = 20

type HandlerImpl struct {
	service Service
	bridge  *bridge.Bridge
	timeout time.Duration
	logger  *slog.Logger
}

type searchResponse struct {
	Query     string                 `json:"query"`
	Count     int                    `json:"count"`
	Documents []types.ScoredDocument `json:"documents"`
}

func NewHandlerImpl(service Service, b *bridge.Bridge, timeout time.Duration, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		bridge:  b,
		timeout: timeout,
		logger:  logger,
	}
}

// SearchDocuments serves GET /api/v1/documents/search?q=...&k=5.
func (h *HandlerImpl) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DocumentHandler").Start(r.Context(), "SearchDocuments", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/documents/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchDocuments"))

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}
	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxSearchResults {
			api.ErrorResponse(w, r, http.StatusBadRequest, "k must be between 1 and 20")
			return
		}
		k = n
	}

	docs, err := bridge.Run(ctx, h.bridge, func(ctx context.Context) ([]types.ScoredDocument, error) {
		return h.service.Retrieve(ctx, query, k)
	}, h.timeout)
	if err != nil {
		status := api.StatusFromError(err)
		l.ErrorContext(ctx, "Document search failed", slog.Int("status", status), slog.Any("error", err))
		api.ErrorResponse(w, r, status, api.PublicMessage(status, err))
		return
	}
	if docs == nil {
		docs = []types.ScoredDocument{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, searchResponse{Query: query, Count: len(docs), Documents: docs})
}

func (h *HandlerImpl) CountDocuments(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("DocumentHandler").Start(r.Context(), "CountDocuments", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/documents/count"),
	))
	defer span.End()

	n, err := bridge.Run(ctx, h.bridge, h.service.Count, h.timeout)
	if err != nil {
		status := api.StatusFromError(err)
		h.logger.ErrorContext(ctx, "Document count failed", slog.Any("error", err))
		api.ErrorResponse(w, r, status, api.PublicMessage(status, err))
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]int64{"documents": n})
}
