package usecase

import (
	"context"

	"docpilot/internal/memory"
	"docpilot/internal/model"
	"docpilot/pkg/gdrive"
	"docpilot/pkg/llmprovider"
	"docpilot/pkg/openai"
)

// mockChat implements ChatProvider for tests.
type mockChat struct {
	generateFunc func(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
	requests     []*llmprovider.Request
}

func (m *mockChat) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.requests = append(m.requests, req)
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return &llmprovider.Response{Content: "mock chat reply"}, nil
}

// mockCompleter implements CompletionProvider for tests.
type mockCompleter struct {
	completionFunc func(ctx context.Context, req *openai.CompletionRequest) (*openai.CompletionResponse, error)
	requests       []*openai.CompletionRequest
}

func (m *mockCompleter) Completion(ctx context.Context, req *openai.CompletionRequest) (*openai.CompletionResponse, error) {
	m.requests = append(m.requests, req)
	if m.completionFunc != nil {
		return m.completionFunc(ctx, req)
	}
	return &openai.CompletionResponse{
		Choices: []openai.CompletionChoice{{Text: "mock completion"}},
	}, nil
}

// mockStore implements memory.Store for tests.
type mockStore struct {
	storeFunc func(ctx context.Context, content string, meta model.MemoryMetadata) (string, error)
	queryFunc func(ctx context.Context, text string, topK int) ([]string, error)

	stored  []storedRecord
	queries []string
}

type storedRecord struct {
	content string
	meta    model.MemoryMetadata
}

func (m *mockStore) Store(ctx context.Context, content string, meta model.MemoryMetadata) (string, error) {
	m.stored = append(m.stored, storedRecord{content: content, meta: meta})
	if m.storeFunc != nil {
		return m.storeFunc(ctx, content, meta)
	}
	return "mock-id", nil
}

func (m *mockStore) Query(ctx context.Context, text string, topK int) ([]string, error) {
	m.queries = append(m.queries, text)
	if m.queryFunc != nil {
		return m.queryFunc(ctx, text, topK)
	}
	return nil, nil
}

func (m *mockStore) ClearAll(context.Context) error { return nil }

func (m *mockStore) Stats(context.Context) (memory.Stats, error) {
	return memory.Stats{TotalRecords: int64(len(m.stored)), Backend: "mock"}, nil
}

// mockEmbedder implements memory.Embedder for tests.
type mockEmbedder struct {
	embedFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedFunc != nil {
		return m.embedFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

// mockDrive implements DriveFetcher for tests.
type mockDrive struct {
	fetchFunc func(ctx context.Context, fileID string) (*gdrive.File, error)
}

func (m *mockDrive) FetchText(ctx context.Context, fileID string) (*gdrive.File, error) {
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, fileID)
	}
	return &gdrive.File{ID: fileID, Name: fileID + ".txt", Content: "drive content"}, nil
}

// Mock logger for testing
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

// newTestUseCase wires the use case with default mocks; callers override
// fields on the returned mocks before running.
func newTestUseCase() (*implUseCase, *mockChat, *mockCompleter, *mockStore) {
	chat := &mockChat{}
	completer := &mockCompleter{}
	store := &mockStore{}
	uc := &implUseCase{
		l:         &mockLogger{},
		chat:      chat,
		completer: completer,
		embedder:  &mockEmbedder{},
		store:     store,
	}
	return uc, chat, completer, store
}
