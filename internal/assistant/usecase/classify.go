package usecase

import (
	"context"
	"strings"

	"docpilot/internal/assistant"
	"docpilot/pkg/llmprovider"
)

// classify assigns exactly one category to the request. It asks the chat
// provider first and accepts only an exact category token; anything else
// falls back to keyword matching, which always yields a category.
func (uc *implUseCase) classify(ctx context.Context, s assistant.State) (assistant.State, error) {
	if category, ok := uc.classifyWithModel(ctx, s); ok {
		s.Category = category
		uc.l.Infof(ctx, "classify: model classified request as %s", category)
		return s, nil
	}

	s.Category = classifyByKeywords(s.Input, len(s.FileContents) > 0)
	uc.l.Infof(ctx, "classify: keyword fallback classified request as %s", s.Category)
	return s, nil
}

func (uc *implUseCase) classifyWithModel(ctx context.Context, s assistant.State) (assistant.Category, bool) {
	content := s.Input
	if s.MemoryContext != "" {
		content = s.MemoryContext + "\n\n" + content
	}
	if excerpts := fileExcerpts(s.FileContents); excerpts != "" {
		content = content + "\n\nAttached documents:\n" + excerpts
	}

	resp, err := uc.chat.GenerateContent(ctx, &llmprovider.Request{
		System:    ClassifierInstruction,
		Messages:  []llmprovider.Message{{Role: llmprovider.RoleUser, Content: content}},
		MaxTokens: ClassifyMaxTokens,
	})
	if err != nil {
		uc.l.Warnf(ctx, "classifyWithModel: provider call failed: %v", err)
		return "", false
	}

	reply := strings.ToLower(strings.TrimSpace(resp.Content))
	category, ok := assistant.ParseCategory(reply)
	if !ok {
		uc.l.Warnf(ctx, "classifyWithModel: unusable reply %q", resp.Content)
		return "", false
	}
	return category, true
}

// classifyByKeywords implements the deterministic fallback. Precedence:
// writing verbs first, then file-dependent analysis/reading, then
// reasoning, then creative, with qa as the final default.
func classifyByKeywords(input string, hasFiles bool) assistant.Category {
	lower := strings.ToLower(input)

	switch {
	case containsAny(lower, "write", "create", "compose"):
		return assistant.CategoryWriting
	case hasFiles:
		if containsAny(lower, "analyze", "summarize") {
			return assistant.CategoryAnalysis
		}
		return assistant.CategoryReading
	case containsAny(lower, "think", "reason", "logic"):
		return assistant.CategoryReasoning
	case containsAny(lower, "creative", "imagine", "story"):
		return assistant.CategoryCreative
	default:
		return assistant.CategoryQA
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
