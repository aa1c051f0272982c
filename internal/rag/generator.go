package rag

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"aarogya-ai/internal/ai"
)

// FallbackResponse is what users see when the LLM call fails for any
// reason. Diagnostic detail goes to the log only.
const FallbackResponse = "I'm sorry, I couldn't process that request right now. Please try again in a moment."

// TextCompleter is the external text-generation capability.
type TextCompleter interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

// Generator sends a composed prompt to the LLM. It is the single layer
// allowed to swallow failures: every error from the external call is logged
// and translated into FallbackResponse, never propagated.
type Generator struct {
	completer TextCompleter
	logger    zerolog.Logger
}

func NewGenerator(completer TextCompleter, logger zerolog.Logger) *Generator {
	return &Generator{completer: completer, logger: logger}
}

func (g *Generator) Generate(ctx context.Context, prompt string) string {
	answer, err := g.completer.Complete(ctx, []ai.ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		g.logger.Error().Err(err).Msg("llm generation failed")
		return FallbackResponse
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		g.logger.Warn().Msg("llm returned empty response")
		return FallbackResponse
	}
	return answer
}
