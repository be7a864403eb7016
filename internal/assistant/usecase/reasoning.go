package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"docpilot/internal/assistant"
	"docpilot/pkg/llmprovider"
)

var (
	stepLineRe     = regexp.MustCompile(`(?i)^step\s+\d+:`)
	numberedLineRe = regexp.MustCompile(`^\d+[.)]\s`)
)

// handleReasoning serves logic and multi-step problems with a low
// temperature and a chain-of-thought persona, then extracts the
// individual steps from the reply.
func (uc *implUseCase) handleReasoning(ctx context.Context, s assistant.State) (assistant.State, error) {
	system := PersonaReasoning
	if s.MemoryContext != "" {
		system = system + "\n\n" + s.MemoryContext
	}
	if tail := historyTail(s.History, MaxHistoryTailChars); tail != "" {
		system = system + "\n\nConversation so far:\n" + tail
	}

	resp, err := uc.chat.GenerateContent(ctx, &llmprovider.Request{
		System:      system,
		Messages:    []llmprovider.Message{{Role: llmprovider.RoleUser, Content: s.Input}},
		Temperature: ReasoningTemperature,
		MaxTokens:   ResponseMaxTokens,
	})
	if err != nil {
		return s, fmt.Errorf("reasoning handler: %w", err)
	}

	s.ReasoningSteps = extractReasoningSteps(resp.Content)
	return uc.finish(ctx, s, LabelReasoning, resp.Content), nil
}

// extractReasoningSteps pulls step-like lines out of a reply: "Step N:"
// lines, bullets, numbered lines, or lines mentioning "reasoning:". When
// nothing matches, the whole reply counts as a single step.
func extractReasoningSteps(reply string) []string {
	var steps []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case stepLineRe.MatchString(line),
			numberedLineRe.MatchString(line),
			strings.HasPrefix(line, "-"),
			strings.HasPrefix(line, "*"),
			strings.HasPrefix(line, "•"),
			strings.Contains(strings.ToLower(line), "reasoning:"):
			steps = append(steps, line)
		}
	}
	if len(steps) == 0 && strings.TrimSpace(reply) != "" {
		steps = []string{strings.TrimSpace(reply)}
	}
	return steps
}
