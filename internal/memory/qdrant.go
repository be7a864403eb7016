package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docpilot/internal/model"
	"docpilot/pkg/log"
	pkgQdrant "docpilot/pkg/qdrant"
)

// QdrantStore persists memories in an external Qdrant collection.
type QdrantStore struct {
	client         *pkgQdrant.Client
	embedder       Embedder
	collectionName string
	threshold      float64
	l              log.Logger
}

// NewQdrantStore creates the remote-index store and ensures its collection exists.
func NewQdrantStore(ctx context.Context, client *pkgQdrant.Client, embedder Embedder, collectionName string, vectorSize int, threshold float64, l log.Logger) (*QdrantStore, error) {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}

	err := client.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: collectionName,
		Vectors: pkgQdrant.VectorConfig{
			Size:     vectorSize,
			Distance: "Cosine",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure qdrant collection %s: %w", collectionName, err)
	}

	return &QdrantStore{
		client:         client,
		embedder:       embedder,
		collectionName: collectionName,
		threshold:      threshold,
		l:              l,
	}, nil
}

// Store embeds content and upserts a point with the metadata as payload.
func (s *QdrantStore) Store(ctx context.Context, content string, meta model.MemoryMetadata) (string, error) {
	vectors, err := s.embedder.Embed(ctx, []string{content})
	if err != nil {
		return "", fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("embedder returned no vector")
	}

	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	id := uuid.NewString()

	point := pkgQdrant.Point{
		ID:     id,
		Vector: vectors[0],
		Payload: map[string]any{
			"content":        content,
			"kind":           meta.Kind,
			"category":       meta.Category,
			"source_excerpt": meta.SourceExcerpt,
			"created_at":     meta.CreatedAt.Format(time.RFC3339),
		},
	}

	err = s.client.UpsertPoints(ctx, s.collectionName, pkgQdrant.UpsertPointsRequest{
		Points: []pkgQdrant.Point{point},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert point: %w", err)
	}

	s.l.Debugf(ctx, "memory: stored record %s (kind=%s)", id, meta.Kind)
	return id, nil
}

// Query embeds text and searches the collection; the similarity threshold
// is pushed down to Qdrant via score_threshold.
func (s *QdrantStore) Query(ctx context.Context, text string, topK int) ([]string, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	vectors, err := s.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}

	resp, err := s.client.SearchPoints(ctx, s.collectionName, pkgQdrant.SearchRequest{
		Vector:         vectors[0],
		Limit:          topK,
		WithPayload:    true,
		ScoreThreshold: s.threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]string, 0, len(resp.Result))
	for _, point := range resp.Result {
		content, ok := point.Payload["content"].(string)
		if !ok || content == "" {
			continue
		}
		results = append(results, content)
	}
	return results, nil
}

// ClearAll deletes every point in the collection.
func (s *QdrantStore) ClearAll(ctx context.Context) error {
	if err := s.client.DeleteAllPoints(ctx, s.collectionName); err != nil {
		return fmt.Errorf("failed to clear collection: %w", err)
	}
	return nil
}

// Stats reports the collection point count.
func (s *QdrantStore) Stats(ctx context.Context) (Stats, error) {
	info, err := s.client.GetCollection(ctx, s.collectionName)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to fetch collection info: %w", err)
	}
	return Stats{
		TotalRecords: info.PointsCount,
		Backend:      "qdrant",
		Detail:       fmt.Sprintf("collection=%s status=%s", s.collectionName, info.Status),
	}, nil
}
