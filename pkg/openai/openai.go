package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is the OpenAI HTTP API client.
type Client struct {
	apiKey          string
	baseURL         string
	chatModel       string
	completionModel string
	embeddingModel  string
	httpClient      *http.Client
}

// New creates a new OpenAI client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = DefaultCompletionModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}

	return &Client{
		apiKey:          cfg.APIKey,
		baseURL:         cfg.BaseURL,
		chatModel:       cfg.ChatModel,
		completionModel: cfg.CompletionModel,
		embeddingModel:  cfg.EmbeddingModel,
		httpClient:      &http.Client{Timeout: DefaultTimeout},
	}, nil
}

// WithHTTPClient overrides the default HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// ChatCompletion sends a chat-completions request.
func (c *Client) ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("openai: at least one message is required")
	}
	if req.Model == "" {
		req.Model = c.chatModel
	}

	var result ChatResponse
	if err := c.post(ctx, "/chat/completions", req, &result); err != nil {
		return nil, err
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty chat response")
	}
	return &result, nil
}

// Completion sends a single-prompt completions request.
func (c *Client) Completion(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("openai: prompt is required")
	}
	if req.Model == "" {
		req.Model = c.completionModel
	}

	var result CompletionResponse
	if err := c.post(ctx, "/completions", req, &result); err != nil {
		return nil, err
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty completion response")
	}
	return &result, nil
}

// Embed generates embeddings for the given texts.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("openai: at least one text is required")
	}

	req := EmbedRequest{
		Input: texts,
		Model: c.embeddingModel,
	}

	var result EmbedResponse
	if err := c.post(ctx, "/embeddings", req, &result); err != nil {
		return nil, err
	}

	embeddings := make([][]float32, len(result.Data))
	for i, item := range result.Data {
		embeddings[i] = item.Embedding
	}
	return embeddings, nil
}

// ChatModel returns the configured chat model.
func (c *Client) ChatModel() string { return c.chatModel }

// CompletionModel returns the configured completion model.
func (c *Client) CompletionModel() string { return c.completionModel }

// post marshals the body, executes the request, and decodes the result.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(raw))
	if err != nil {
		return fmt.Errorf("openai: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("openai: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if jsonErr := json.Unmarshal(respBody, &errResp); jsonErr == nil && errResp.Error.Message != "" {
			return fmt.Errorf("openai: API error %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return fmt.Errorf("openai: API error %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openai: failed to decode response: %w", err)
	}
	return nil
}
