package openai

import "context"

// IOpenAI defines the interface for the OpenAI API client.
// Implementations are safe for concurrent use.
type IOpenAI interface {
	// ChatCompletion sends a multi-message chat request.
	ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Completion sends a single-prompt generative request.
	Completion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Embed generates embedding vectors for the given texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ChatModel returns the configured chat model.
	ChatModel() string

	// CompletionModel returns the configured completion model.
	CompletionModel() string
}
