package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"docpilot/internal/assistant"
	"docpilot/internal/model"
	"docpilot/pkg/llmprovider"
	"docpilot/pkg/openai"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input rejected before any work", func(t *testing.T) {
		uc, chat, completer, store := newTestUseCase()

		_, err := uc.Run(ctx, assistant.RunInput{Input: "   \n\t "})
		if !errors.Is(err, assistant.ErrEmptyInput) {
			t.Fatalf("expected ErrEmptyInput, got %v", err)
		}
		if len(chat.requests) != 0 || len(completer.requests) != 0 || len(store.queries) != 0 {
			t.Error("no provider or store call should happen for empty input")
		}
	})

	t.Run("writing request end to end", func(t *testing.T) {
		uc, chat, completer, store := newTestUseCase()
		chat.generateFunc = func(_ context.Context, _ *llmprovider.Request) (*llmprovider.Response, error) {
			return &llmprovider.Response{Content: "writing"}, nil
		}
		completer.completionFunc = func(_ context.Context, _ *openai.CompletionRequest) (*openai.CompletionResponse, error) {
			return &openai.CompletionResponse{Choices: []openai.CompletionChoice{{Text: "A poem about waves."}}}, nil
		}

		out, err := uc.Run(ctx, assistant.RunInput{Input: "Write a short poem about the ocean"})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if out.TaskType != "writing" {
			t.Errorf("expected task type writing, got %s", out.TaskType)
		}
		if !strings.HasPrefix(out.Response, LabelWriting) {
			t.Errorf("response missing label: %q", out.Response)
		}
		if len(out.History) != 2 {
			t.Fatalf("expected 2 history turns, got %d", len(out.History))
		}
		if out.History[0].Role != model.RoleUser || out.History[1].Role != model.RoleAssistant {
			t.Errorf("unexpected history roles: %+v", out.History)
		}
		if len(completer.requests) != 1 || completer.requests[0].Temperature != GenerativeTemperature {
			t.Errorf("expected one completion at temperature %v", GenerativeTemperature)
		}
		// one response record stored
		found := false
		for _, rec := range store.stored {
			if rec.meta.Kind == model.MemoryKindResponse && rec.meta.Category == "writing" {
				found = true
			}
		}
		if !found {
			t.Error("expected the response to be stored in memory")
		}
	})

	t.Run("writing request via keyword fallback when classifier is down", func(t *testing.T) {
		uc, chat, completer, _ := newTestUseCase()
		chat.generateFunc = func(_ context.Context, _ *llmprovider.Request) (*llmprovider.Response, error) {
			return nil, errors.New("classifier provider down")
		}
		completer.completionFunc = func(_ context.Context, _ *openai.CompletionRequest) (*openai.CompletionResponse, error) {
			return &openai.CompletionResponse{Choices: []openai.CompletionChoice{{Text: "A poem about waves."}}}, nil
		}

		out, err := uc.Run(ctx, assistant.RunInput{Input: "Write a short poem about the ocean"})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if out.TaskType != "writing" {
			t.Errorf("expected keyword fallback to classify writing, got %s", out.TaskType)
		}
		if !strings.HasPrefix(out.Response, LabelWriting) {
			t.Errorf("response missing label: %q", out.Response)
		}
		if len(out.History) != 2 {
			t.Errorf("expected 2 history turns, got %d", len(out.History))
		}
	})

	t.Run("analysis with file routes to reading handler", func(t *testing.T) {
		uc, chat, completer, store := newTestUseCase()
		chat.generateFunc = func(_ context.Context, _ *llmprovider.Request) (*llmprovider.Response, error) {
			return &llmprovider.Response{Content: "analysis"}, nil
		}
		var prompt string
		completer.completionFunc = func(_ context.Context, req *openai.CompletionRequest) (*openai.CompletionResponse, error) {
			prompt = req.Prompt
			return &openai.CompletionResponse{Choices: []openai.CompletionChoice{{Text: "The report covers Q3."}}}, nil
		}

		path := filepath.Join(t.TempDir(), "report.txt")
		if err := os.WriteFile(path, []byte("Q3 revenue grew 12%."), 0o644); err != nil {
			t.Fatal(err)
		}

		out, err := uc.Run(ctx, assistant.RunInput{
			Input:     "Summarize this report",
			FilePaths: []string{path},
		})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if out.TaskType != "analysis" {
			t.Errorf("expected task type analysis, got %s", out.TaskType)
		}
		if !strings.HasPrefix(out.Response, LabelReading) {
			t.Errorf("analysis should be served by the reading handler: %q", out.Response)
		}
		if !strings.Contains(prompt, "Q3 revenue grew 12%.") {
			t.Errorf("prompt missing file content: %q", prompt)
		}
		// file content stored as a memory side effect
		fileStored := false
		for _, rec := range store.stored {
			if rec.meta.Kind == model.MemoryKindFile {
				fileStored = true
			}
		}
		if !fileStored {
			t.Error("expected the file content to be stored in memory")
		}
	})

	t.Run("handler failure leaves caller history untouched", func(t *testing.T) {
		uc, chat, completer, _ := newTestUseCase()
		chat.generateFunc = func(_ context.Context, _ *llmprovider.Request) (*llmprovider.Response, error) {
			return &llmprovider.Response{Content: "writing"}, nil
		}
		completer.completionFunc = func(_ context.Context, _ *openai.CompletionRequest) (*openai.CompletionResponse, error) {
			return nil, errors.New("provider down")
		}

		history := []model.Turn{
			{Role: model.RoleUser, Content: "earlier question"},
			{Role: model.RoleAssistant, Content: "earlier answer"},
		}
		_, err := uc.Run(ctx, assistant.RunInput{Input: "write something", History: history})
		if err == nil {
			t.Fatal("expected error from failed handler")
		}
		if len(history) != 2 || history[0].Content != "earlier question" {
			t.Errorf("caller history mutated: %+v", history)
		}
	})

	t.Run("qa replays history to the chat provider", func(t *testing.T) {
		uc, chat, _, _ := newTestUseCase()
		var qaReq *llmprovider.Request
		chat.generateFunc = func(_ context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
			if req.System == ClassifierInstruction {
				return &llmprovider.Response{Content: "qa"}, nil
			}
			qaReq = req
			return &llmprovider.Response{Content: "It is blue."}, nil
		}

		history := []model.Turn{
			{Role: model.RoleUser, Content: "what color is the sky"},
			{Role: model.RoleAssistant, Content: "[Q&A Assistant] Blue."},
		}
		out, err := uc.Run(ctx, assistant.RunInput{Input: "and at night?", History: history})
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
		if qaReq == nil {
			t.Fatal("qa handler never called the chat provider")
		}
		if len(qaReq.Messages) != 3 {
			t.Fatalf("expected history + input = 3 messages, got %d", len(qaReq.Messages))
		}
		if qaReq.Messages[2].Content != "and at night?" {
			t.Errorf("last message should be the input, got %q", qaReq.Messages[2].Content)
		}
		if len(out.History) != 4 {
			t.Errorf("expected history to grow to 4 turns, got %d", len(out.History))
		}
	})

	t.Run("unknown category defaults to qa", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase()

		s, err := uc.dispatch(ctx, assistant.State{Input: "hello", Category: "banana"})
		if err != nil {
			t.Fatalf("dispatch returned error: %v", err)
		}
		if s.Category != assistant.CategoryQA {
			t.Errorf("expected qa fallback, got %s", s.Category)
		}
		if !strings.HasPrefix(s.Response, LabelQA) {
			t.Errorf("expected qa label, got %q", s.Response)
		}
	})
}

func TestAppendTurns(t *testing.T) {
	history := make([]model.Turn, 1, 4) // spare capacity on purpose
	history[0] = model.Turn{Role: model.RoleUser, Content: "first"}

	got := appendTurns(history, model.Turn{Role: model.RoleAssistant, Content: "second"})
	if len(got) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got))
	}

	// appending to the result must not write into the caller's array
	_ = append(got, model.Turn{Role: model.RoleUser, Content: "third"})
	if len(history) != 1 || history[0].Content != "first" {
		t.Errorf("caller history mutated: %+v", history)
	}
}
