// Package genai provides text-generation providers used by the conversation
// and recommendation flows.
//
// It defines a provider-neutral client interface backed by OpenAI or Google
// Gemini implementations.
package genai

import "context"

// ResponseFormat selects the shape of generated content.
type ResponseFormat string

const (
	// ResponseFormatText requests plain prose output.
	ResponseFormatText ResponseFormat = "text"
	// ResponseFormatJSON requests a structured JSON object as text.
	ResponseFormatJSON ResponseFormat = "json"
)

// GenerationParams holds the inputs of one generation call.
type GenerationParams struct {
	Prompt         string
	SystemPrompt   string
	Temperature    float64
	ResponseFormat ResponseFormat
}

// GenerationResult is the outcome of one generation call. A failed call has
// Success false and a non-empty Error; Content is only meaningful on success.
type GenerationResult struct {
	Success  bool
	Content  string
	Error    string
	Provider string
}

// ClientInterface defines the generation capability consumed by the flows.
// Implementations must be safe for concurrent use.
type ClientInterface interface {
	Generate(ctx context.Context, params GenerationParams) GenerationResult
	ProviderName() string
}

// successResult builds a successful GenerationResult.
func successResult(content, provider string) GenerationResult {
	return GenerationResult{Success: true, Content: content, Provider: provider}
}

// failureResult builds a failed GenerationResult.
func failureResult(err, provider string) GenerationResult {
	return GenerationResult{Success: false, Error: err, Provider: provider}
}
