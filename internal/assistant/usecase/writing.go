package usecase

import (
	"context"
	"fmt"

	"docpilot/internal/assistant"
	"docpilot/pkg/openai"
)

// handleWriting serves writing requests with the single-prompt
// generative model at a moderate temperature.
func (uc *implUseCase) handleWriting(ctx context.Context, s assistant.State) (assistant.State, error) {
	resp, err := uc.completer.Completion(ctx, &openai.CompletionRequest{
		Prompt:      buildPrompt(PersonaWriting, s),
		Temperature: GenerativeTemperature,
		MaxTokens:   ResponseMaxTokens,
	})
	if err != nil {
		return s, fmt.Errorf("writing handler: %w", err)
	}
	return uc.finish(ctx, s, LabelWriting, resp.Choices[0].Text), nil
}
