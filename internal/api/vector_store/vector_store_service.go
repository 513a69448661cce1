package vectorstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Embedder turns text into a vector. *generativeAI.AIClient satisfies it.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

type Service interface {
	Ingest(ctx context.Context, docs []types.Document) (types.IngestReport, error)
	Retrieve(ctx context.Context, query string, k int) ([]types.ScoredDocument, error)
	Count(ctx context.Context) (int64, error)
	Reset(ctx context.Context) (int64, error)
}

type ServiceImpl struct {
	repo     Repository
	embedder Embedder
	cache    *cache.Cache
	cfg      config.RAGConfig
	logger   *slog.Logger
}

func NewService(repo Repository, embedder Embedder, cfg config.RAGConfig, logger *slog.Logger) *ServiceImpl {
	ttl := cfg.EmbeddingCacheTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &ServiceImpl{
		repo:     repo,
		embedder: embedder,
		cache:    cache.New(ttl, time.Hour),
		cfg:      cfg,
		logger:   logger,
	}
}

// SplitText cuts text into windows of at most size runes, each starting
// overlap runes before the end of the previous one. Cuts snap back to
// whitespace when there is some in the second half of the window.
func SplitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if size <= 0 || len(runes) <= size {
		return []string{text}
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}
		for cut := end; cut > start+size/2; cut-- {
			if unicode.IsSpace(runes[cut]) {
				end = cut
				break
			}
		}
		chunks = append(chunks, strings.TrimSpace(string(runes[start:end])))
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

func (s *ServiceImpl) embed(ctx context.Context, text string) ([]float32, error) {
	sum := sha256.Sum256([]byte(text))
	key := hex.EncodeToString(sum[:])
	if v, ok := s.cache.Get(key); ok {
		return v.([]float32), nil
	}
	vec, err := s.embedder.EmbedText(ctx, text)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, vec)
	return vec, nil
}

// Ingest chunks, embeds and stores the documents. Embedding calls run
// concurrently, bounded by rag.ingestConcurrency.
func (s *ServiceImpl) Ingest(ctx context.Context, docs []types.Document) (types.IngestReport, error) {
	ctx, span := otel.Tracer("VectorStoreService").Start(ctx, "Ingest", trace.WithAttributes(
		attribute.Int("documents.count", len(docs)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Ingest"))
	start := time.Now()

	var chunks []types.Document
	for _, doc := range docs {
		for i, part := range SplitText(doc.Content, s.cfg.ChunkSize, s.cfg.ChunkOverlap) {
			chunk := doc
			chunk.ChunkIndex = i
			chunk.Content = part
			chunks = append(chunks, chunk)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	limit := s.cfg.IngestConcurrency
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)
	for _, chunk := range chunks {
		g.Go(func() error {
			vec, err := s.embed(gctx, chunk.Title+"\n"+chunk.Content)
			if err != nil {
				return fmt.Errorf("embedding %s#%d: %w", chunk.SourceID, chunk.ChunkIndex, err)
			}
			if _, err := s.repo.Upsert(gctx, chunk, vec); err != nil {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		l.ErrorContext(ctx, "Ingestion failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Ingestion failed")
		return types.IngestReport{}, fmt.Errorf("failed to ingest documents: %w", err)
	}

	report := types.IngestReport{
		Documents: len(docs),
		Chunks:    len(chunks),
		Duration:  time.Since(start),
	}
	l.InfoContext(ctx, "Documents ingested",
		slog.Int("documents", report.Documents),
		slog.Int("chunks", report.Chunks),
		slog.Duration("duration", report.Duration))
	span.SetAttributes(attribute.Int("chunks.count", report.Chunks))
	span.SetStatus(codes.Ok, "Documents ingested")
	return report, nil
}

// Retrieve returns the k documents most similar to query; k <= 0 means
// rag.maxSourceDocs.
func (s *ServiceImpl) Retrieve(ctx context.Context, query string, k int) ([]types.ScoredDocument, error) {
	ctx, span := otel.Tracer("VectorStoreService").Start(ctx, "Retrieve", trace.WithAttributes(
		attribute.Int("query.length", len(query)),
	))
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		span.SetStatus(codes.Error, "Empty query")
		return nil, types.ErrEmptyQuery
	}
	if k <= 0 {
		k = s.cfg.MaxSourceDocs
	}

	vec, err := s.embed(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query embedding failed")
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	docs, err := s.repo.SimilaritySearch(ctx, vec, k)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Similarity search failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("results.count", len(docs)))
	return docs, nil
}

func (s *ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImpl) Reset(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.cache.Flush()
	return n, nil
}
