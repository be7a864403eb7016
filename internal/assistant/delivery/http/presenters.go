package http

import (
	"docpilot/internal/assistant"
	"docpilot/internal/memory"
	"docpilot/internal/model"
)

// --- Request DTOs ---

type turnReq struct {
	Role    string `json:"role"    binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

type chatReq struct {
	Input     string    `json:"input"      binding:"required"`
	FilePaths []string  `json:"file_paths" binding:"omitempty,max=20"`
	History   []turnReq `json:"history"    binding:"omitempty,dive"`
}

func (r chatReq) validate() error { return nil }

func (r chatReq) toInput() assistant.RunInput {
	history := make([]model.Turn, len(r.History))
	for i, turn := range r.History {
		history[i] = model.Turn{Role: turn.Role, Content: turn.Content}
	}
	return assistant.RunInput{
		Input:     r.Input,
		FilePaths: r.FilePaths,
		History:   history,
	}
}

// --- Response DTOs ---

type turnResp struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResp struct {
	Response       string     `json:"response"`
	TaskType       string     `json:"task_type"`
	ReasoningSteps []string   `json:"reasoning_steps,omitempty"`
	SimilarContent []string   `json:"similar_content,omitempty"`
	MemoryContext  string     `json:"memory_context,omitempty"`
	History        []turnResp `json:"history"`
}

func (h *handler) newChatResp(out assistant.RunOutput) chatResp {
	history := make([]turnResp, len(out.History))
	for i, turn := range out.History {
		history[i] = turnResp{Role: turn.Role, Content: turn.Content}
	}
	return chatResp{
		Response:       out.Response,
		TaskType:       out.TaskType,
		ReasoningSteps: out.ReasoningSteps,
		SimilarContent: out.SimilarContent,
		MemoryContext:  out.MemoryContext,
		History:        history,
	}
}

type statsResp struct {
	TotalRecords int64  `json:"total_records"`
	Backend      string `json:"backend"`
	Detail       string `json:"detail,omitempty"`
}

func newStatsResp(stats memory.Stats) statsResp {
	return statsResp{
		TotalRecords: stats.TotalRecords,
		Backend:      stats.Backend,
		Detail:       stats.Detail,
	}
}
