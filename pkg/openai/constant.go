package openai

import "time"

const (
	// DefaultBaseURL is the default OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultChatModel is the chat-completions model for structured tasks.
	DefaultChatModel = "gpt-3.5-turbo"

	// DefaultCompletionModel is the single-prompt model for generative tasks.
	DefaultCompletionModel = "gpt-3.5-turbo-instruct"

	// DefaultEmbeddingModel produces 1536-dimension vectors.
	DefaultEmbeddingModel = "text-embedding-ada-002"

	// EmbeddingDimension is the vector size of DefaultEmbeddingModel.
	EmbeddingDimension = 1536

	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 60 * time.Second
)

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
