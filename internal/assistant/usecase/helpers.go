package usecase

import (
	"context"
	"fmt"
	"strings"

	"docpilot/internal/assistant"
	"docpilot/internal/model"
)

// truncateRunes keeps at most n runes of text.
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// historyTail flattens the conversation into "role: content" lines and
// keeps the last maxChars runes. Empty history yields "".
func historyTail(history []model.Turn, maxChars int) string {
	if len(history) == 0 {
		return ""
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		lines = append(lines, turn.Role+": "+turn.Content)
	}
	joined := strings.Join(lines, "\n")
	runes := []rune(joined)
	if len(runes) <= maxChars {
		return joined
	}
	return string(runes[len(runes)-maxChars:])
}

// mergeMatches combines two match lists input-first with first-seen-wins
// dedupe, capped at limit.
func mergeMatches(inputMatches, historyMatches []string, limit int) []string {
	seen := make(map[string]struct{}, len(inputMatches)+len(historyMatches))
	var merged []string
	for _, m := range append(append([]string{}, inputMatches...), historyMatches...) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		merged = append(merged, m)
		if len(merged) == limit {
			break
		}
	}
	return merged
}

// renderMemoryContext formats retrieved matches as a prompt block, or ""
// when there are none.
func renderMemoryContext(matches []string) string {
	if len(matches) == 0 {
		return ""
	}
	return MemoryContextHeader + "\n\n" + strings.Join(matches, "\n\n")
}

// fileExcerpts renders attached file contents as named excerpt blocks.
func fileExcerpts(blobs []model.FileBlob) string {
	if len(blobs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(blobs))
	for _, blob := range blobs {
		parts = append(parts, fmt.Sprintf("--- %s ---\n%s", blob.Name, truncateRunes(blob.Content, MaxFileExcerptChars)))
	}
	return strings.Join(parts, "\n\n")
}

// buildPrompt assembles the generative prompt from persona, memory
// context, file excerpts, flattened history and the request, skipping
// empty sections.
func buildPrompt(persona string, s assistant.State) string {
	sections := []string{persona}
	if s.MemoryContext != "" {
		sections = append(sections, s.MemoryContext)
	}
	if excerpts := fileExcerpts(s.FileContents); excerpts != "" {
		sections = append(sections, "Attached documents:\n"+excerpts)
	}
	if tail := historyTail(s.History, MaxHistoryTailChars); tail != "" {
		sections = append(sections, "Conversation so far:\n"+tail)
	}
	sections = append(sections, "Request: "+s.Input)
	return strings.Join(sections, "\n\n")
}

// appendTurns returns a new history slice with the exchange appended.
// The caller's slice is never mutated; the copy has exact capacity so a
// later append cannot write into the caller's backing array.
func appendTurns(history []model.Turn, turns ...model.Turn) []model.Turn {
	out := make([]model.Turn, len(history), len(history)+len(turns))
	copy(out, history)
	return append(out, turns...)
}

// finish applies the handler label, extends the history with the
// exchange, and stores the response in memory best-effort.
func (uc *implUseCase) finish(ctx context.Context, s assistant.State, label, text string) assistant.State {
	s.Response = label + " " + strings.TrimSpace(text)
	s.History = appendTurns(s.History,
		model.Turn{Role: model.RoleUser, Content: s.Input},
		model.Turn{Role: model.RoleAssistant, Content: s.Response},
	)

	if _, err := uc.store.Store(ctx, s.Response, model.MemoryMetadata{
		Kind:          model.MemoryKindResponse,
		Category:      string(s.Category),
		SourceExcerpt: truncateRunes(s.Input, MaxSourceExcerptChars),
	}); err != nil {
		uc.l.Warnf(ctx, "finish: failed to store response in memory: %v", err)
	}
	return s
}
