package deepseek

import "context"

// IDeepSeek defines the interface for DeepSeek LLM client
type IDeepSeek interface {
	ChatCompletion(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}
