package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/api/chat"
	vectorstore "github.com/FACorreiaa/go-tourism-chatbot/internal/api/vector_store"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/dataset"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

func newBenchChatHandler(b *testing.B) http.Handler {
	b.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg, err := config.LoadEmbedded()
	if err != nil {
		b.Fatal(err)
	}

	br, err := bridge.New(bridge.WithName("bench"), bridge.WithLogger(logger))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(br.Shutdown)

	store := &memoryStore{docs: make(map[string]types.Document)}
	vectors := vectorstore.NewService(store, constantEmbedder{}, cfg.RAG, logger)
	if _, err := vectors.Ingest(context.Background(), dataset.Generate().Documents()); err != nil {
		b.Fatal(err)
	}
	svc := chat.NewService(&scriptedLLM{}, vectors, nil, nil, nil, cfg.LLM, cfg.RAG, logger, nil)
	return newHTTPHandler(logger, routerForChat(chat.NewHandlerImpl(svc, br, 5*time.Second, logger)), time.Minute)
}

func routerForChat(h *chat.HandlerImpl) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/chat", h.Chat)
	return mux
}

func BenchmarkChatEndpoint(b *testing.B) {
	handler := newBenchChatHandler(b)
	body := `{"session_id":"bench","message":"Which beaches are good in December?"}`

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			b.Fatalf("unexpected status %d: %s", rr.Code, rr.Body.String())
		}
	}
}

func BenchmarkChatEndpointParallel(b *testing.B) {
	handler := newBenchChatHandler(b)
	body := `{"message":"What should I eat in Colombo?"}`

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != http.StatusOK {
				b.Errorf("unexpected status %d", rr.Code)
			}
		}
	})
}

func BenchmarkBridgeRun(b *testing.B) {
	br, err := bridge.New(bridge.WithName("bench-run"), bridge.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		b.Fatal(err)
	}
	defer br.Shutdown()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := bridge.Run(ctx, br, func(context.Context) (int, error) { return i, nil }, time.Second); err != nil {
			b.Fatal(err)
		}
	}
}
