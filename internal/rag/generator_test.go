package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"aarogya-ai/internal/ai"
)

type stubCompleter struct {
	answer string
	err    error
	calls  int
	prompt string
}

func (s *stubCompleter) Complete(_ context.Context, messages []ai.ChatMessage) (string, error) {
	s.calls++
	if len(messages) > 0 {
		s.prompt = messages[len(messages)-1].Content
	}
	return s.answer, s.err
}

func TestGeneratePassesPromptThrough(t *testing.T) {
	completer := &stubCompleter{answer: "  Your hemoglobin is slightly low.  "}
	g := NewGenerator(completer, zerolog.Nop())

	got := g.Generate(context.Background(), "composed prompt")
	if got != "Your hemoglobin is slightly low." {
		t.Fatalf("expected trimmed answer, got %q", got)
	}
	if completer.prompt != "composed prompt" {
		t.Fatalf("prompt not forwarded verbatim: %q", completer.prompt)
	}
}

func TestGenerateSwallowsErrors(t *testing.T) {
	completer := &stubCompleter{err: errors.New("upstream 500")}
	g := NewGenerator(completer, zerolog.Nop())

	if got := g.Generate(context.Background(), "p"); got != FallbackResponse {
		t.Fatalf("expected fallback on error, got %q", got)
	}
}

func TestGenerateFallsBackOnEmptyAnswer(t *testing.T) {
	completer := &stubCompleter{answer: "   \n  "}
	g := NewGenerator(completer, zerolog.Nop())

	if got := g.Generate(context.Background(), "p"); got != FallbackResponse {
		t.Fatalf("expected fallback on blank answer, got %q", got)
	}
}
