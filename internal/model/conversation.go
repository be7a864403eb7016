package model

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation turn. Immutable once created; a
// conversation history is an append-only, chronologically ordered slice.
type Turn struct {
	Role    string `json:"role"` // user or assistant
	Content string `json:"content"`
}

// FileBlob is the decoded text content of one attached file.
// It lives for a single orchestration call; persistence happens only
// through the memory store side effect.
type FileBlob struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
