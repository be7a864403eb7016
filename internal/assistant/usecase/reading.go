package usecase

import (
	"context"
	"fmt"

	"docpilot/internal/assistant"
	"docpilot/pkg/openai"
)

// handleReading serves both reading and analysis requests: the attached
// document excerpts carry the weight, so a single grounded prompt covers
// both categories.
func (uc *implUseCase) handleReading(ctx context.Context, s assistant.State) (assistant.State, error) {
	resp, err := uc.completer.Completion(ctx, &openai.CompletionRequest{
		Prompt:      buildPrompt(PersonaReading, s),
		Temperature: ChatTemperature,
		MaxTokens:   ResponseMaxTokens,
	})
	if err != nil {
		return s, fmt.Errorf("reading handler: %w", err)
	}
	return uc.finish(ctx, s, LabelReading, resp.Choices[0].Text), nil
}
