package memory

import (
	"context"
	"fmt"

	"docpilot/config"
	"docpilot/pkg/log"
	pkgQdrant "docpilot/pkg/qdrant"
)

// NewStore creates the config-selected memory backend behind one Store interface.
func NewStore(ctx context.Context, cfg config.MemoryConfig, embedder Embedder, l log.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(embedder, cfg.SimilarityThreshold, l), nil

	case "qdrant":
		client := pkgQdrant.NewClient(cfg.Qdrant.URL)
		return NewQdrantStore(ctx, client, embedder, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize, cfg.SimilarityThreshold, l)

	default:
		return nil, fmt.Errorf("unknown memory backend: %s", cfg.Backend)
	}
}
