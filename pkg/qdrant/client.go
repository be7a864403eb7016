package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client is the Qdrant HTTP API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Qdrant client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// CreateCollection creates a new collection with the given configuration.
// Idempotent on an existing collection of the same shape.
func (c *Client) CreateCollection(ctx context.Context, req CreateCollectionRequest) error {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, req.Name)
	return c.do(ctx, http.MethodPut, url, req, nil, http.StatusOK, http.StatusCreated, http.StatusConflict)
}

// UpsertPoints inserts or updates points (vectors) in a collection.
func (c *Client) UpsertPoints(ctx context.Context, collectionName string, req UpsertPointsRequest) error {
	url := fmt.Sprintf("%s/collections/%s/points", c.baseURL, collectionName)
	return c.do(ctx, http.MethodPut, url, req, nil, http.StatusOK)
}

// SearchPoints performs semantic search in a collection.
func (c *Client) SearchPoints(ctx context.Context, collectionName string, req SearchRequest) (*SearchResponse, error) {
	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, collectionName)

	var result SearchResponse
	if err := c.do(ctx, http.MethodPost, url, req, &result, http.StatusOK); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteAllPoints deletes every point in a collection via an empty filter.
func (c *Client) DeleteAllPoints(ctx context.Context, collectionName string) error {
	url := fmt.Sprintf("%s/collections/%s/points/delete", c.baseURL, collectionName)
	return c.do(ctx, http.MethodPost, url, deleteAllRequest{Filter: map[string]any{}}, nil, http.StatusOK)
}

// GetCollection returns collection metadata, including the point count.
func (c *Client) GetCollection(ctx context.Context, collectionName string) (*CollectionInfo, error) {
	url := fmt.Sprintf("%s/collections/%s", c.baseURL, collectionName)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qdrant: API error: %d", resp.StatusCode)
	}

	var result collectionInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("qdrant: failed to decode response: %w", err)
	}
	return &result.Result, nil
}

// do marshals the body, executes the request, and decodes the result when out is non-nil.
func (c *Client) do(ctx context.Context, method, url string, body any, out any, okStatuses ...int) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("qdrant: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(raw))
	if err != nil {
		return fmt.Errorf("qdrant: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("qdrant: failed to call API: %w", err)
	}
	defer resp.Body.Close()

	ok := false
	for _, status := range okStatuses {
		if resp.StatusCode == status {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("qdrant: API error: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("qdrant: failed to decode response: %w", err)
		}
	}
	return nil
}
