package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	defaultEmbedCacheSize = 512
	embedCacheTTL         = 10 * time.Minute
)

// CachedEmbedder fronts an Embedder with an expirable LRU keyed by the
// exact input text. The pipeline embeds the user input once for the
// state and again inside the store query; the second call is a hit.
type CachedEmbedder struct {
	inner Embedder
	cache *expirable.LRU[string, []float32]
}

// NewCachedEmbedder wraps inner with an LRU of the given size.
func NewCachedEmbedder(inner Embedder, size int) *CachedEmbedder {
	if size <= 0 {
		size = defaultEmbedCacheSize
	}
	return &CachedEmbedder{
		inner: inner,
		cache: expirable.NewLRU[string, []float32](size, nil, embedCacheTTL),
	}
}

// Embed returns cached vectors where possible and batches the misses
// into a single provider call.
func (e *CachedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))

	var misses []string
	var missIdx []int
	for i, text := range texts {
		if vector, ok := e.cache.Get(text); ok {
			results[i] = vector
			continue
		}
		misses = append(misses, text)
		missIdx = append(missIdx, i)
	}

	if len(misses) == 0 {
		return results, nil
	}

	vectors, err := e.inner.Embed(ctx, misses)
	if err != nil {
		return nil, err
	}

	for i, vector := range vectors {
		if i >= len(missIdx) {
			break
		}
		results[missIdx[i]] = vector
		e.cache.Add(misses[i], vector)
	}
	return results, nil
}
