package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/api"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/api/chat"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/api/flight"
	vectorstore "github.com/FACorreiaa/go-tourism-chatbot/internal/api/vector_store"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ChatHandler     *chat.HandlerImpl
	FlightHandler   *flight.HandlerImpl
	DocumentHandler *vectorstore.HandlerImpl
	Bridge          *bridge.Bridge
	AllowedOrigins  []string
}

type healthResponse struct {
	Status  string `json:"status"`
	Bridge  string `json:"bridge"`
	Pending int    `json:"pending_tasks"`
}

// SetupRouter initializes the API router. Server-wide middleware (request
// ID, logging, recoverer) is applied in main before this router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8501"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Sri Lanka Tourism Chatbot API"))
	})

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", Bridge: bridge.StateStopped.String()}
		status := http.StatusServiceUnavailable
		if cfg.Bridge != nil {
			resp.Bridge = cfg.Bridge.State().String()
			resp.Pending = cfg.Bridge.Pending()
			if cfg.Bridge.State() == bridge.StateRunning {
				status = http.StatusOK
			}
		}
		if status != http.StatusOK {
			resp.Status = "degraded"
		}
		api.WriteJSONResponse(w, r, status, resp)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/chat", func(r chi.Router) {
			r.Post("/", cfg.ChatHandler.Chat)
			r.Delete("/{sessionID}", cfg.ChatHandler.ClearSession)
			r.Get("/{sessionID}/history", cfg.ChatHandler.GetHistory)
		})

		r.Route("/flights", func(r chi.Router) {
			r.Get("/", cfg.FlightHandler.GetFlightsByRoute)
			r.Get("/{flightIATA}", cfg.FlightHandler.GetFlightStatus)
		})

		if cfg.DocumentHandler != nil {
			r.Get("/documents/search", cfg.DocumentHandler.SearchDocuments)
			r.Get("/documents/count", cfg.DocumentHandler.CountDocuments)
		}
	})

	return r
}
