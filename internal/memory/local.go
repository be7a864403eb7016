package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docpilot/internal/model"
	"docpilot/pkg/log"
)

// LocalStore is an in-process store with brute-force cosine search.
// Suitable for local/dev use and tests; the qdrant backend covers
// anything that needs to survive a restart.
type LocalStore struct {
	mu        sync.RWMutex
	records   []model.MemoryRecord
	dim       int // fixed by the first stored record
	embedder  Embedder
	threshold float64
	l         log.Logger
}

// NewLocalStore creates an in-process memory store.
func NewLocalStore(embedder Embedder, threshold float64, l log.Logger) *LocalStore {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &LocalStore{
		embedder:  embedder,
		threshold: threshold,
		l:         l,
	}
}

// Store embeds content and appends a new record.
func (s *LocalStore) Store(ctx context.Context, content string, meta model.MemoryMetadata) (string, error) {
	vectors, err := s.embedder.Embed(ctx, []string{content})
	if err != nil {
		return "", fmt.Errorf("failed to generate embedding: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("embedder returned no vector")
	}
	vector := vectors[0]

	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	record := model.MemoryRecord{
		ID:       uuid.NewString(),
		Vector:   vector,
		Content:  content,
		Metadata: meta,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dim == 0 {
		s.dim = len(vector)
	} else if len(vector) != s.dim {
		return "", fmt.Errorf("embedding dimension mismatch: store has %d, got %d", s.dim, len(vector))
	}

	s.records = append(s.records, record)
	return record.ID, nil
}

// Query returns up to topK stored contents above the similarity threshold.
func (s *LocalStore) Query(ctx context.Context, text string, topK int) ([]string, error) {
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
	query := vectors[0]

	type scored struct {
		content string
		score   float64
	}

	s.mu.RLock()
	matches := make([]scored, 0, len(s.records))
	seen := make(map[string]struct{}, len(s.records))
	for _, record := range s.records {
		if _, dup := seen[record.Content]; dup {
			continue
		}
		score := CosineSimilarity(query, record.Vector)
		if score >= s.threshold {
			seen[record.Content] = struct{}{}
			matches = append(matches, scored{content: record.Content, score: score})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}

	results := make([]string, len(matches))
	for i, m := range matches {
		results[i] = m.content
	}
	return results, nil
}

// ClearAll drops every record.
func (s *LocalStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.dim = 0
	return nil
}

// Stats reports the record count.
func (s *LocalStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		TotalRecords: int64(len(s.records)),
		Backend:      "local",
		Detail:       fmt.Sprintf("in-process brute-force cosine, dim=%d", s.dim),
	}, nil
}

// CosineSimilarity returns dot(a,b)/(|a|*|b|).
// Zero magnitude or a dimension mismatch yields 0 so retrieval stays
// best-effort instead of erroring on malformed vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
