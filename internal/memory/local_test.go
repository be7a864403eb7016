package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"docpilot/internal/model"
)

// emptyEmbedder succeeds but returns no vectors.
type emptyEmbedder struct{}

func (emptyEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, nil
}

// mockEmbedder returns canned vectors per text, with an optional error.
type mockEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := m.vectors[text]
		if !ok {
			v = []float32{1, 0, 0}
		}
		out[i] = v
	}
	return out, nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.3, 0.5, 0.2}
		if got := CosineSimilarity(v, v); math.Abs(got-1.0) > 1e-9 {
			t.Errorf("expected 1.0, got %v", got)
		}
	})

	t.Run("zero vector", func(t *testing.T) {
		if got := CosineSimilarity([]float32{1, 2, 3}, []float32{0, 0, 0}); got != 0 {
			t.Errorf("expected 0 for zero vector, got %v", got)
		}
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		if got := CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3}); got != 0 {
			t.Errorf("expected 0 for dimension mismatch, got %v", got)
		}
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		if got := CosineSimilarity([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
			t.Errorf("expected 0 for orthogonal vectors, got %v", got)
		}
	})
}

func TestLocalStoreQuery(t *testing.T) {
	ctx := context.Background()

	t.Run("threshold filters weak matches", func(t *testing.T) {
		embedder := &mockEmbedder{vectors: map[string][]float32{
			"strong": {1, 0, 0},
			"weak":   {0, 1, 0},
			"query":  {1, 0, 0},
		}}
		store := NewLocalStore(embedder, 0.7, &mockLogger{})

		for _, content := range []string{"strong", "weak"} {
			if _, err := store.Store(ctx, content, model.MemoryMetadata{Kind: model.MemoryKindResponse}); err != nil {
				t.Fatalf("store failed: %v", err)
			}
		}

		results, err := store.Query(ctx, "query", 3)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(results) != 1 || results[0] != "strong" {
			t.Errorf("expected only the strong match, got %v", results)
		}
	})

	t.Run("topK caps results most similar first", func(t *testing.T) {
		embedder := &mockEmbedder{vectors: map[string][]float32{
			"a":     {1, 0, 0},
			"b":     {0.95, 0.05, 0},
			"c":     {0.9, 0.1, 0},
			"query": {1, 0, 0},
		}}
		store := NewLocalStore(embedder, 0.7, &mockLogger{})

		for _, content := range []string{"c", "a", "b"} {
			if _, err := store.Store(ctx, content, model.MemoryMetadata{}); err != nil {
				t.Fatalf("store failed: %v", err)
			}
		}

		results, err := store.Query(ctx, "query", 2)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0] != "a" {
			t.Errorf("expected most similar first, got %v", results)
		}
	})

	t.Run("duplicate content returned once", func(t *testing.T) {
		embedder := &mockEmbedder{vectors: map[string][]float32{
			"repeated": {1, 0, 0},
			"query":    {1, 0, 0},
		}}
		store := NewLocalStore(embedder, 0.7, &mockLogger{})

		for i := 0; i < 3; i++ {
			if _, err := store.Store(ctx, "repeated", model.MemoryMetadata{}); err != nil {
				t.Fatalf("store failed: %v", err)
			}
		}

		results, err := store.Query(ctx, "query", 3)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("expected one result for duplicated content, got %v", results)
		}
	})

	t.Run("dimension mismatch on insert is rejected", func(t *testing.T) {
		embedder := &mockEmbedder{vectors: map[string][]float32{
			"first":  {1, 0, 0},
			"second": {1, 0},
		}}
		store := NewLocalStore(embedder, 0.7, &mockLogger{})

		if _, err := store.Store(ctx, "first", model.MemoryMetadata{}); err != nil {
			t.Fatalf("store failed: %v", err)
		}
		if _, err := store.Store(ctx, "second", model.MemoryMetadata{}); err == nil {
			t.Error("expected error for mismatched dimension")
		}
	})

	t.Run("empty embedder result yields a clean error", func(t *testing.T) {
		store := NewLocalStore(&emptyEmbedder{}, 0.7, &mockLogger{})

		_, err := store.Store(ctx, "anything", model.MemoryMetadata{})
		if err == nil {
			t.Fatal("expected error for empty embedding result")
		}
		if strings.Contains(err.Error(), "%!w") {
			t.Errorf("error wraps a nil cause: %q", err.Error())
		}

		_, err = store.Query(ctx, "anything", 3)
		if err == nil {
			t.Fatal("expected error for empty embedding result")
		}
		if strings.Contains(err.Error(), "%!w") {
			t.Errorf("error wraps a nil cause: %q", err.Error())
		}
	})

	t.Run("embedding failure surfaces as error", func(t *testing.T) {
		embedder := &mockEmbedder{err: errors.New("embedding down")}
		store := NewLocalStore(embedder, 0.7, &mockLogger{})

		if _, err := store.Store(ctx, "anything", model.MemoryMetadata{}); err == nil {
			t.Error("expected store error when embedding fails")
		}
		if _, err := store.Query(ctx, "anything", 3); err == nil {
			t.Error("expected query error when embedding fails")
		}
	})
}

func TestLocalStoreClearAll(t *testing.T) {
	ctx := context.Background()
	embedder := &mockEmbedder{vectors: map[string][]float32{}}
	store := NewLocalStore(embedder, 0.7, &mockLogger{})

	if _, err := store.Store(ctx, "something", model.MemoryMetadata{}); err != nil {
		t.Fatalf("store failed: %v", err)
	}

	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("second clear should be idempotent: %v", err)
	}

	results, err := store.Query(ctx, "anything", 3)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results after clear, got %v", results)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalRecords != 0 {
		t.Errorf("expected 0 records after clear, got %d", stats.TotalRecords)
	}
}

func TestLocalStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	embedder := &mockEmbedder{vectors: map[string][]float32{}}
	store := NewLocalStore(embedder, 0.1, &mockLogger{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_, _ = store.Store(ctx, fmt.Sprintf("record-%d", n), model.MemoryMetadata{})
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Query(ctx, "record", 3)
		}()
	}
	wg.Wait()

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalRecords != 20 {
		t.Errorf("expected 20 records, got %d", stats.TotalRecords)
	}
}

func TestCachedEmbedder(t *testing.T) {
	ctx := context.Background()
	inner := &mockEmbedder{vectors: map[string][]float32{"hello": {1, 2, 3}}}
	cached := NewCachedEmbedder(inner, 16)

	first, err := cached.Embed(ctx, []string{"hello"})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	second, err := cached.Embed(ctx, []string{"hello"})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("expected a single provider call, got %d", inner.calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0][0] != second[0][0] {
		t.Errorf("expected identical cached vector")
	}
}
