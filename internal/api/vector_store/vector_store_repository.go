package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
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
	Upsert(ctx context.Context, doc types.Document, embedding []float32) (uuid.UUID, error)
	SimilaritySearch(ctx context.Context, embedding []float32, limit int) ([]types.ScoredDocument, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
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

// vectorLiteral renders an embedding in pgvector's text input format.
func vectorLiteral(embedding []float32) string {
	strs := make([]string, len(embedding))
	for i, v := range embedding {
		strs[i] = strconv.FormatFloat(float64(v), 'f', -1, 32)
	}
	return "[" + strings.Join(strs, ",") + "]"
}

func (r *RepositoryImpl) observe(ctx context.Context, op string, start time.Time, err error) {
	if r.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("operation", op), attribute.String("table", "tourism_documents"))
	r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		r.metrics.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func (r *RepositoryImpl) Upsert(ctx context.Context, doc types.Document, embedding []float32) (id uuid.UUID, err error) {
	ctx, span := otel.Tracer("VectorStoreRepository").Start(ctx, "Upsert", trace.WithAttributes(
		attribute.String("document.source_id", doc.SourceID),
		attribute.Int("document.chunk_index", doc.ChunkIndex),
		attribute.Int("embedding.dimension", len(embedding)),
	))
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, "upsert", start, err) }(time.Now())

	l := r.logger.With(slog.String("method", "Upsert"))

	metadata := doc.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	metaJSON, err := json.Marshal(metadata)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal document metadata: %w", err)
	}

	query := `
        INSERT INTO tourism_documents (source_id, chunk_index, category, title, content, metadata, embedding)
        VALUES ($1, $2, $3, $4, $5, $6, $7::vector)
        ON CONFLICT (source_id, chunk_index) DO UPDATE SET
            category = EXCLUDED.category,
            title = EXCLUDED.title,
            content = EXCLUDED.content,
            metadata = EXCLUDED.metadata,
            embedding = EXCLUDED.embedding,
            updated_at = NOW()
        RETURNING id::text
    `

	var idStr string
	err = r.pgpool.QueryRow(ctx, query,
		doc.SourceID,
		doc.ChunkIndex,
		string(doc.Category),
		doc.Title,
		doc.Content,
		metaJSON,
		vectorLiteral(embedding),
	).Scan(&idStr)
	if err != nil {
		l.ErrorContext(ctx, "Failed to upsert document", slog.String("source_id", doc.SourceID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database upsert failed")
		return uuid.Nil, fmt.Errorf("failed to upsert document %s#%d: %w", doc.SourceID, doc.ChunkIndex, err)
	}

	id, err = uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid document id %q: %w", idStr, err)
	}
	span.SetStatus(codes.Ok, "Document upserted")
	return id, nil
}

// SimilaritySearch returns the documents closest to embedding by cosine
// distance, most similar first.
func (r *RepositoryImpl) SimilaritySearch(ctx context.Context, embedding []float32, limit int) (docs []types.ScoredDocument, err error) {
	ctx, span := otel.Tracer("VectorStoreRepository").Start(ctx, "SimilaritySearch", trace.WithAttributes(
		attribute.Int("embedding.dimension", len(embedding)),
		attribute.Int("limit", limit),
	))
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, "similarity_search", start, err) }(time.Now())

	l := r.logger.With(slog.String("method", "SimilaritySearch"))

	query := `
        SELECT
            id::text,
            source_id,
            chunk_index,
            category,
            title,
            content,
            metadata,
            1 - (embedding <=> $1::vector) AS similarity
        FROM tourism_documents
        ORDER BY embedding <=> $1::vector
        LIMIT $2
    `

	rows, err := r.pgpool.Query(ctx, query, vectorLiteral(embedding), limit)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query similar documents", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Database query failed")
		return nil, fmt.Errorf("failed to search similar documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			doc        types.ScoredDocument
			idStr      string
			category   string
			chunkIndex int
			metaJSON   []byte
		)
		if err = rows.Scan(&idStr, &doc.SourceID, &chunkIndex, &category, &doc.Title, &doc.Content, &metaJSON, &doc.Similarity); err != nil {
			l.ErrorContext(ctx, "Failed to scan document row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		if doc.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("invalid document id %q: %w", idStr, err)
		}
		doc.ChunkIndex = chunkIndex
		doc.Category = types.Category(category)
		if len(metaJSON) > 0 {
			if err = json.Unmarshal(metaJSON, &doc.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode metadata for %s: %w", doc.SourceID, err)
			}
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		l.ErrorContext(ctx, "Error iterating document rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	l.DebugContext(ctx, "Similar documents found", slog.Int("count", len(docs)))
	span.SetAttributes(attribute.Int("results.count", len(docs)))
	span.SetStatus(codes.Ok, "Similar documents found")
	return docs, nil
}

func (r *RepositoryImpl) Count(ctx context.Context) (n int64, err error) {
	ctx, span := otel.Tracer("VectorStoreRepository").Start(ctx, "Count")
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, "count", start, err) }(time.Now())

	if err = r.pgpool.QueryRow(ctx, `SELECT COUNT(*) FROM tourism_documents`).Scan(&n); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Count failed")
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}

func (r *RepositoryImpl) DeleteAll(ctx context.Context) (n int64, err error) {
	ctx, span := otel.Tracer("VectorStoreRepository").Start(ctx, "DeleteAll")
	defer span.End()
	defer func(start time.Time) { r.observe(ctx, "delete_all", start, err) }(time.Now())

	tag, err := r.pgpool.Exec(ctx, `DELETE FROM tourism_documents`)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete documents", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}
	r.logger.InfoContext(ctx, "Vector store cleared", slog.Int64("rows", tag.RowsAffected()))
	return tag.RowsAffected(), nil
}
