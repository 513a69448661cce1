package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

// StatusFromError maps bridge and domain errors onto HTTP status codes.
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, bridge.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, bridge.ErrNotRunning), errors.Is(err, bridge.ErrAbandoned),
		errors.Is(err, context.Canceled), errors.Is(err, types.ErrNoAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, types.ErrEmptyQuery), errors.Is(err, types.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage hides internal failures from clients.
func PublicMessage(status int, err error) string {
	switch status {
	case http.StatusGatewayTimeout:
		return "The assistant took too long to respond. Please try again."
	case http.StatusServiceUnavailable:
		return "The service is temporarily unavailable. Please try again later."
	case http.StatusInternalServerError:
		return "An internal error occurred."
	default:
		return err.Error()
	}
}
