package usecase

import (
	"context"

	"docpilot/internal/assistant"
	"docpilot/internal/memory"
	"docpilot/pkg/gdrive"
	"docpilot/pkg/llmprovider"
	"docpilot/pkg/log"
	"docpilot/pkg/openai"
)

// ChatProvider is the chat-style provider chain used for structured tasks
// (classification, Q&A, reasoning). Satisfied by *llmprovider.Manager.
type ChatProvider interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// CompletionProvider is the single-prompt generative provider used for
// long-form tasks (writing, reading, creative). Satisfied by *openai.Client.
type CompletionProvider interface {
	Completion(ctx context.Context, req *openai.CompletionRequest) (*openai.CompletionResponse, error)
}

// DriveFetcher resolves gdrive: file paths. Satisfied by *gdrive.Client.
type DriveFetcher interface {
	FetchText(ctx context.Context, fileID string) (*gdrive.File, error)
}

type implUseCase struct {
	l         log.Logger
	chat      ChatProvider
	completer CompletionProvider
	embedder  memory.Embedder
	store     memory.Store
	drive     DriveFetcher // optional, may be nil
}

// New creates the assistant use case. drive may be nil when Google Drive
// ingestion is not configured.
func New(l log.Logger, chat ChatProvider, completer CompletionProvider, embedder memory.Embedder, store memory.Store, drive DriveFetcher) assistant.UseCase {
	return &implUseCase{
		l:         l,
		chat:      chat,
		completer: completer,
		embedder:  embedder,
		store:     store,
		drive:     drive,
	}
}
