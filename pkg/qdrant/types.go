package qdrant

// CreateCollectionRequest defines the schema for creating a collection.
type CreateCollectionRequest struct {
	Name    string       `json:"-"` // collection name goes in the URL
	Vectors VectorConfig `json:"vectors"`
}

// VectorConfig defines vector dimension and distance metric.
type VectorConfig struct {
	Size     int    `json:"size"`     // vector dimension (e.g., 1536 for ada-002)
	Distance string `json:"distance"` // "Cosine", "Euclid", "Dot"
}

// Point represents a vector with payload (metadata).
// Qdrant requires ID to be a UUID string or uint64, not an arbitrary string.
type Point struct {
	ID      any            `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// UpsertPointsRequest is the request to insert/update points.
type UpsertPointsRequest struct {
	Points []Point `json:"points"`
}

// SearchRequest is the request for semantic search.
type SearchRequest struct {
	Vector         []float32      `json:"vector"`
	Limit          int            `json:"limit"`
	WithPayload    bool           `json:"with_payload"`
	ScoreThreshold float64        `json:"score_threshold,omitempty"`
	Filter         map[string]any `json:"filter,omitempty"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Result []ScoredPoint `json:"result"`
}

// ScoredPoint is a search result with similarity score.
type ScoredPoint struct {
	ID      string         `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// deleteAllRequest deletes every point matching the (empty) filter.
type deleteAllRequest struct {
	Filter map[string]any `json:"filter"`
}

// CollectionInfo is the subset of collection metadata the service uses.
type CollectionInfo struct {
	Status      string `json:"status"`
	PointsCount int64  `json:"points_count"`
}

// collectionInfoResponse wraps GET /collections/{name}.
type collectionInfoResponse struct {
	Result CollectionInfo `json:"result"`
}
