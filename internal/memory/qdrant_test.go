package memory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"docpilot/internal/model"
	pkgQdrant "docpilot/pkg/qdrant"
)

// fakeQdrant is a minimal in-memory Qdrant HTTP double.
type fakeQdrant struct {
	points   []map[string]any
	searched pkgQdrant.SearchRequest
}

func (f *fakeQdrant) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(r.URL.Path, "/points"):
			var req pkgQdrant.UpsertPointsRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			for _, p := range req.Points {
				f.points = append(f.points, p.Payload)
			}
			w.WriteHeader(http.StatusOK)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/points/search"):
			_ = json.NewDecoder(r.Body).Decode(&f.searched)
			resp := pkgQdrant.SearchResponse{}
			for i, payload := range f.points {
				if i >= f.searched.Limit {
					break
				}
				resp.Result = append(resp.Result, pkgQdrant.ScoredPoint{Score: 0.9, Payload: payload})
			}
			_ = json.NewEncoder(w).Encode(resp)

		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/points/delete"):
			f.points = nil
			w.WriteHeader(http.StatusOK)

		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{"status": "green", "points_count": len(f.points)},
			})

		default: // collection create
			w.WriteHeader(http.StatusOK)
		}
	})
}

func TestQdrantStore(t *testing.T) {
	ctx := context.Background()
	fake := &fakeQdrant{}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	embedder := &mockEmbedder{vectors: map[string][]float32{}}
	store, err := NewQdrantStore(ctx, pkgQdrant.NewClient(server.URL), embedder, "memories", 3, 0.7, &mockLogger{})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	t.Run("store and query round trip", func(t *testing.T) {
		id, err := store.Store(ctx, "meeting notes", model.MemoryMetadata{Kind: model.MemoryKindFile})
		if err != nil {
			t.Fatalf("store failed: %v", err)
		}
		if id == "" {
			t.Error("expected non-empty record id")
		}

		results, err := store.Query(ctx, "notes", 3)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(results) != 1 || results[0] != "meeting notes" {
			t.Errorf("unexpected results: %v", results)
		}
		if fake.searched.ScoreThreshold != 0.7 {
			t.Errorf("expected threshold pushed to qdrant, got %v", fake.searched.ScoreThreshold)
		}
		if !fake.searched.WithPayload {
			t.Error("expected with_payload search")
		}
	})

	t.Run("stats reflects point count", func(t *testing.T) {
		stats, err := store.Stats(ctx)
		if err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		if stats.TotalRecords != 1 || stats.Backend != "qdrant" {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})

	t.Run("clear all empties the collection", func(t *testing.T) {
		if err := store.ClearAll(ctx); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		results, err := store.Query(ctx, "notes", 3)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results after clear, got %v", results)
		}
	})
}
