// Package llm wraps the hosted text-generation services behind a single
// interface so the rest of the backend never touches provider SDKs directly.
package llm

import (
	"context"
	"fmt"

	"ayurhealth-backend/internal/config"
)

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Closer is implemented by generators holding network resources.
type Closer interface {
	Close() error
}

// NewTextGenerator builds the generator selected by config.
func NewTextGenerator(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "openai":
		return NewOpenAIGenerator(cfg.OpenAIModel), nil
	case "groq":
		return NewGroqGenerator(cfg.GroqAPIKey, cfg.GroqModel), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
}
