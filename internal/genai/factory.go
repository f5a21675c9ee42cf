package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// NewFromEnv creates a generation client based on the LLM_PROVIDER environment
// variable ("openai" or "gemini"; defaults to openai). The LLM_MODEL variable
// optionally overrides the provider's default model.
func NewFromEnv(ctx context.Context) (ClientInterface, error) {
	provider := os.Getenv("LLM_PROVIDER")
	if provider == "" {
		provider = "openai"
	}
	model := os.Getenv("LLM_MODEL")

	slog.Debug("genai.NewFromEnv: selecting provider", "provider", provider, "model", model)

	switch provider {
	case "openai":
		return NewOpenAIClient(model)
	case "gemini":
		return NewGeminiClient(ctx, model)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", provider)
	}
}
