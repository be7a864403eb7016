package memory

import (
	"context"

	"docpilot/internal/model"
)

const (
	// DefaultTopK caps how many matches a query returns.
	DefaultTopK = 3

	// DefaultSimilarityThreshold drops weak matches before the top-K cut.
	DefaultSimilarityThreshold = 0.7
)

// Embedder turns text into fixed-dimension vectors.
// Satisfied by pkg/openai and by CachedEmbedder.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Store persists content+vector pairs and retrieves them by similarity.
// Implementations are safe for concurrent use; each call is atomic with
// respect to other calls.
type Store interface {
	// Store embeds content and persists a new record, returning its ID.
	// Pipeline callers treat a returned error as best-effort: log and continue.
	Store(ctx context.Context, content string, meta model.MemoryMetadata) (string, error)

	// Query embeds text and returns up to topK stored contents with
	// cosine similarity above the threshold, most similar first.
	Query(ctx context.Context, text string, topK int) ([]string, error)

	// ClearAll deletes every record. Idempotent.
	ClearAll(ctx context.Context) error

	// Stats reports record count and backend detail.
	Stats(ctx context.Context) (Stats, error)
}

// Stats describes the state of a memory backend.
type Stats struct {
	TotalRecords int64  `json:"total_records"`
	Backend      string `json:"backend"`
	Detail       string `json:"detail,omitempty"`
}
