package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-tourism-chatbot/app/observability/metrics"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// DB is satisfied by *pgxpool.Pool and by pgxmock pools.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository interface {
	SaveInteraction(ctx context.Context, interaction types.ChatInteraction) (uuid.UUID, error)
	ListInteractions(ctx context.Context, sessionID string, limit int) ([]types.ChatInteraction, error)
}

type RepositoryImpl struct {
	pgpool  DB
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewRepository(pgxpool DB, logger *slog.Logger, m *metrics.AppMetrics) *RepositoryImpl {
	return &RepositoryImpl{
		pgpool:  pgxpool,
		logger:  logger,
		metrics: m,
	}
}

func (r *RepositoryImpl) observe(ctx context.Context, op string, start time.Time, err error) {
	if r.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("operation", op), attribute.String("table", "chat_interactions"))
	r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		r.metrics.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func (r *RepositoryImpl) SaveInteraction(ctx context.Context, interaction types.ChatInteraction) (id uuid.UUID, err error) {
	ctx, span := otel.Tracer("ChatRepository").Start(ctx, "SaveInteraction", trace.WithAttributes(
		attribute.String("session.id", interaction.SessionID),
		attribute.String("chat.kind", string(interaction.Kind)),
	))
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, "insert", start, err) }(time.Now())

	query := `
        INSERT INTO chat_interactions (session_id, question, answer, kind, source_count, latency_ms)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id::text
    `

	var idStr string
	err = r.pgpool.QueryRow(ctx, query,
		interaction.SessionID,
		interaction.Question,
		interaction.Answer,
		string(interaction.Kind),
		interaction.SourceCount,
		interaction.LatencyMs,
	).Scan(&idStr)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to save chat interaction",
			slog.String("method", "SaveInteraction"),
			slog.String("session_id", interaction.SessionID),
			slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Insert failed")
		return uuid.Nil, fmt.Errorf("failed to save chat interaction: %w", err)
	}

	id, err = uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid interaction id %q: %w", idStr, err)
	}
	return id, nil
}

// ListInteractions returns the most recent interactions of a session,
// oldest first.
func (r *RepositoryImpl) ListInteractions(ctx context.Context, sessionID string, limit int) (out []types.ChatInteraction, err error) {
	ctx, span := otel.Tracer("ChatRepository").Start(ctx, "ListInteractions", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, "select", start, err) }(time.Now())

	if limit <= 0 {
		limit = 50
	}

	query := `
        SELECT id::text, session_id, question, answer, kind, source_count, latency_ms, created_at
        FROM (
            SELECT * FROM chat_interactions
            WHERE session_id = $1
            ORDER BY created_at DESC
            LIMIT $2
        ) recent
        ORDER BY created_at ASC
    `

	rows, err := r.pgpool.Query(ctx, query, sessionID, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, fmt.Errorf("failed to list chat interactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it    types.ChatInteraction
			idStr string
			kind  string
		)
		if err = rows.Scan(&idStr, &it.SessionID, &it.Question, &it.Answer, &kind, &it.SourceCount, &it.LatencyMs, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat interaction: %w", err)
		}
		if it.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("invalid interaction id %q: %w", idStr, err)
		}
		it.Kind = types.ResponseKind(kind)
		out = append(out, it)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat interactions: %w", err)
	}
	return out, nil
}
