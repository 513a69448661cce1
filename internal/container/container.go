package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-tourism-chatbot/app/db"
	"github.com/FACorreiaa/go-tourism-chatbot/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/api/chat"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/api/flight"
	generativeAI "github.com/FACorreiaa/go-tourism-chatbot/internal/api/generative_ai"
	vectorstore "github.com/FACorreiaa/go-tourism-chatbot/internal/api/vector_store"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
)

// Container holds application-wide dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool
	Bridge *bridge.Bridge

	AI          *generativeAI.AIClient
	VectorStore vectorstore.Service
	Flights     flight.Service
	Chat        chat.Service

	ChatHandler     *chat.HandlerImpl
	FlightHandler   *flight.HandlerImpl
	DocumentHandler *vectorstore.HandlerImpl
}

// BridgeOptions translates the bridge section of the config into bridge options.
func BridgeOptions(cfg config.BridgeConfig, logger *slog.Logger, m *metrics.AppMetrics) []bridge.Option {
	opts := []bridge.Option{
		bridge.WithName("tourism"),
		bridge.WithLogger(logger),
		bridge.WithCancelOnTimeout(cfg.CancelOnTimeout),
	}
	if m != nil {
		opts = append(opts, bridge.WithMetrics(m))
	}
	if cfg.DefaultTimeout > 0 {
		opts = append(opts, bridge.WithDefaultTimeout(cfg.DefaultTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		opts = append(opts, bridge.WithShutdownTimeout(cfg.ShutdownTimeout))
	}
	if cfg.StartTimeout > 0 {
		opts = append(opts, bridge.WithStartTimeout(cfg.StartTimeout))
	}
	return opts
}

// NewContainer initializes all dependencies. The bridge is supplied by the
// caller: the server owns a private instance while CLI commands use the
// process-wide default. The container closes whatever bridge it is given.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.AppMetrics, b *bridge.Bridge) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create database config: %w", err)
	}

	pool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}

	aiClient, err := generativeAI.NewAIClient(ctx, cfg.LLM, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}

	vectorRepo := vectorstore.NewRepository(pool, logger, m)
	vectorService := vectorstore.NewService(vectorRepo, aiClient, cfg.RAG, logger)

	flightService := flight.NewService(cfg.Flight, logger, m)

	chatRepo := chat.NewRepository(pool, logger, m)
	chatService := chat.NewService(aiClient, vectorService, flightService, chatRepo, nil, cfg.LLM, cfg.RAG, logger, m)

	flightTimeout := cfg.Flight.Timeout
	if flightTimeout <= 0 {
		flightTimeout = cfg.Bridge.DefaultTimeout
	}

	logger.InfoContext(ctx, "Application container initialized",
		slog.String("model", cfg.LLM.Model),
		slog.String("bridge", b.State().String()))

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Pool:        pool,
		Bridge:      b,
		AI:          aiClient,
		VectorStore: vectorService,
		Flights:     flightService,
		Chat:        chatService,

		ChatHandler:     chat.NewHandlerImpl(chatService, b, cfg.Bridge.ChatTimeout, logger),
		FlightHandler:   flight.NewHandlerImpl(flightService, b, flightTimeout, logger),
		DocumentHandler: vectorstore.NewHandlerImpl(vectorService, b, cfg.Bridge.DefaultTimeout, logger),
	}, nil
}

// Close stops the bridge first so in-flight tasks finish before their
// database connections go away.
func (c *Container) Close() {
	if c.Bridge != nil {
		c.Bridge.Shutdown()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	c.Logger.Info("Application container closed")
}
