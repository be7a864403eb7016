package model

import "time"

// Memory record kinds.
const (
	MemoryKindFile     = "file"
	MemoryKindResponse = "response"
)

// MemoryMetadata describes where a memory record came from.
type MemoryMetadata struct {
	Kind          string    `json:"kind"` // file or response
	Category      string    `json:"category,omitempty"`
	SourceExcerpt string    `json:"source_excerpt,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MemoryRecord is a stored content+vector pair. Never mutated after
// creation; removed only by a bulk clear.
type MemoryRecord struct {
	ID       string         `json:"id"`
	Vector   []float32      `json:"vector"`
	Content  string         `json:"content"`
	Metadata MemoryMetadata `json:"metadata"`
}
