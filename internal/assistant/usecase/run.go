package usecase

import (
	"context"
	"fmt"
	"strings"

	"docpilot/internal/assistant"
)

// stageFunc advances the pipeline state. The returned State is the input
// State plus the stage's writes; untouched fields keep their prior value.
type stageFunc func(ctx context.Context, s assistant.State) (assistant.State, error)

// Run executes the single-pass pipeline:
// ingest files → build context → classify → dispatch to one handler.
func (uc *implUseCase) Run(ctx context.Context, input assistant.RunInput) (assistant.RunOutput, error) {
	if strings.TrimSpace(input.Input) == "" {
		return assistant.RunOutput{}, assistant.ErrEmptyInput
	}

	state := assistant.State{
		Input:     input.Input,
		FilePaths: input.FilePaths,
		History:   input.History,
	}

	stages := []struct {
		name string
		fn   stageFunc
	}{
		{"ingest_files", uc.ingestFiles},
		{"build_context", uc.buildContext},
		{"classify", uc.classify},
		{"dispatch", uc.dispatch},
	}

	for _, stage := range stages {
		var err error
		state, err = stage.fn(ctx, state)
		if err != nil {
			uc.l.Errorf(ctx, "Run: stage %s failed: %v", stage.name, err)
			return assistant.RunOutput{}, fmt.Errorf("%s: %w", stage.name, err)
		}
		uc.l.Debugf(ctx, "Run: stage %s done", stage.name)
	}

	return assistant.RunOutput{
		Response:       state.Response,
		History:        state.History,
		TaskType:       string(state.Category),
		ReasoningSteps: state.ReasoningSteps,
		SimilarContent: state.RetrievedContext,
		MemoryContext:  state.MemoryContext,
	}, nil
}

// dispatch routes the classified state to exactly one handler.
// analysis has no dedicated handler and is served by reading; anything
// unexpected falls back to Q&A.
func (uc *implUseCase) dispatch(ctx context.Context, s assistant.State) (assistant.State, error) {
	switch s.Category {
	case assistant.CategoryWriting:
		return uc.handleWriting(ctx, s)
	case assistant.CategoryReading, assistant.CategoryAnalysis:
		return uc.handleReading(ctx, s)
	case assistant.CategoryReasoning:
		return uc.handleReasoning(ctx, s)
	case assistant.CategoryCreative:
		return uc.handleCreative(ctx, s)
	case assistant.CategoryQA:
		return uc.handleQA(ctx, s)
	default:
		uc.l.Warnf(ctx, "dispatch: unknown category %q, defaulting to qa", s.Category)
		s.Category = assistant.CategoryQA
		return uc.handleQA(ctx, s)
	}
}
