package usecase

import (
	"context"

	"docpilot/internal/assistant"
)

// buildContext embeds the input and gathers similar memories from two
// angles: the input itself and the tail of the conversation history.
// Everything here is best-effort; any failure collapses to an empty
// context and the request continues.
func (uc *implUseCase) buildContext(ctx context.Context, s assistant.State) (assistant.State, error) {
	if vectors, err := uc.embedder.Embed(ctx, []string{s.Input}); err != nil {
		uc.l.Warnf(ctx, "buildContext: failed to embed input: %v", err)
	} else if len(vectors) > 0 {
		s.Embedding = vectors[0]
	}

	inputMatches, err := uc.store.Query(ctx, s.Input, QueryTopK)
	if err != nil {
		uc.l.Warnf(ctx, "buildContext: input query failed: %v", err)
		inputMatches = nil
	}

	var historyMatches []string
	if tail := historyTail(s.History, MaxHistoryTailChars); tail != "" {
		historyMatches, err = uc.store.Query(ctx, tail, QueryTopK)
		if err != nil {
			uc.l.Warnf(ctx, "buildContext: history query failed: %v", err)
			historyMatches = nil
		}
	}

	s.RetrievedContext = mergeMatches(inputMatches, historyMatches, MaxContextMatches)
	s.MemoryContext = renderMemoryContext(s.RetrievedContext)
	return s, nil
}
