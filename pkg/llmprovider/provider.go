package llmprovider

import "context"

// Provider defines the interface for chat-style LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "openai", "deepseek")
	Name() string

	// Model returns the model being used
	Model() string
}

// Request represents a normalized chat generation request
type Request struct {
	System      string // optional system instruction
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a conversation message
type Message struct {
	Role    string // "user", "assistant"
	Content string
}

// Response represents a normalized generation response
type Response struct {
	Content      string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
