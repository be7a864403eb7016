package usecase

import (
	"context"
	"fmt"

	"docpilot/internal/assistant"
	"docpilot/pkg/llmprovider"
)

// handleQA serves question answering over the chat provider chain,
// replaying the conversation history so follow-up questions resolve.
func (uc *implUseCase) handleQA(ctx context.Context, s assistant.State) (assistant.State, error) {
	system := PersonaQA
	if s.MemoryContext != "" {
		system = system + "\n\n" + s.MemoryContext
	}
	if excerpts := fileExcerpts(s.FileContents); excerpts != "" {
		system = system + "\n\nAttached documents:\n" + excerpts
	}

	messages := make([]llmprovider.Message, 0, len(s.History)+1)
	for _, turn := range s.History {
		messages = append(messages, llmprovider.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llmprovider.Message{Role: llmprovider.RoleUser, Content: s.Input})

	resp, err := uc.chat.GenerateContent(ctx, &llmprovider.Request{
		System:      system,
		Messages:    messages,
		Temperature: ChatTemperature,
		MaxTokens:   ResponseMaxTokens,
	})
	if err != nil {
		return s, fmt.Errorf("qa handler: %w", err)
	}
	return uc.finish(ctx, s, LabelQA, resp.Content), nil
}
