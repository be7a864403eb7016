package usecase

import (
	"context"
	"fmt"

	"docpilot/internal/assistant"
	"docpilot/pkg/openai"
)

// handleCreative serves open-ended generative requests at the highest
// temperature.
func (uc *implUseCase) handleCreative(ctx context.Context, s assistant.State) (assistant.State, error) {
	resp, err := uc.completer.Completion(ctx, &openai.CompletionRequest{
		Prompt:      buildPrompt(PersonaCreative, s),
		Temperature: CreativeTemperature,
		MaxTokens:   ResponseMaxTokens,
	})
	if err != nil {
		return s, fmt.Errorf("creative handler: %w", err)
	}
	return uc.finish(ctx, s, LabelCreative, resp.Choices[0].Text), nil
}
