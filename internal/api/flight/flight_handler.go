package flight

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
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

type routeResponse struct {
	Search  types.FlightSearch `json:"search"`
	Count   int                `json:"count"`
	Flights []types.Flight     `json:"flights"`
}

func NewHandlerImpl(service Service, b *bridge.Bridge, timeout time.Duration, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		bridge:  b,
		timeout: timeout,
		logger:  logger,
	}
}

func (h *HandlerImpl) writeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	status := api.StatusFromError(err)
	switch {
	case errors.Is(err, ErrUnknownAirport), errors.Is(err, ErrUnparsableQuery), errors.Is(err, ErrMissingFlightRef):
		status = http.StatusBadRequest
	case errors.Is(err, ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, ErrAccessDenied):
		status = http.StatusBadGateway
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status = http.StatusBadGateway
	}
	l.ErrorContext(r.Context(), "Flight lookup failed", slog.Int("status", status), slog.Any("error", err))
	msg := api.PublicMessage(status, err)
	if status == http.StatusBadGateway || status == http.StatusTooManyRequests {
		msg = err.Error()
	}
	api.ErrorResponse(w, r, status, msg)
}

// GetFlightsByRoute serves GET /api/v1/flights?from=colombo&to=singapore&date=2026-01-02.
func (h *HandlerImpl) GetFlightsByRoute(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("FlightHandler").Start(r.Context(), "GetFlightsByRoute", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/flights"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetFlightsByRoute"))

	search := types.FlightSearch{
		From: strings.TrimSpace(r.URL.Query().Get("from")),
		To:   strings.TrimSpace(r.URL.Query().Get("to")),
		Date: strings.TrimSpace(r.URL.Query().Get("date")),
	}
	if search.From == "" || search.To == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "query parameters 'from' and 'to' are required")
		return
	}
	if search.Date != "" {
		if _, err := time.Parse(time.DateOnly, search.Date); err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
	}

	flights, err := bridge.Run(ctx, h.bridge, func(ctx context.Context) ([]types.Flight, error) {
		return h.service.FlightsByRoute(ctx, search)
	}, h.timeout)
	if err != nil {
		h.writeError(w, r, l, err)
		return
	}

	l.InfoContext(ctx, "Flights found", slog.Int("count", len(flights)))
	api.WriteJSONResponse(w, r, http.StatusOK, routeResponse{Search: search, Count: len(flights), Flights: flights})
}

func (h *HandlerImpl) GetFlightStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("FlightHandler").Start(r.Context(), "GetFlightStatus", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/flights/{flightIATA}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetFlightStatus"))
	flightIATA := chi.URLParam(r, "flightIATA")

	flights, err := bridge.Run(ctx, h.bridge, func(ctx context.Context) ([]types.Flight, error) {
		return h.service.FlightStatus(ctx, flightIATA)
	}, h.timeout)
	if err != nil {
		h.writeError(w, r, l, err)
		return
	}
	if len(flights) == 0 {
		api.ErrorResponse(w, r, http.StatusNotFound, "flight not found")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, flights)
}
