package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is the Gemini model used when none is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiClient implements ClientInterface using Google's Gemini models.
type GeminiClient struct {
	client *gemini.Client
	model  string
}

// NewGeminiClient initializes a new Gemini client using the GEMINI_API_KEY
// environment variable. An optional model overrides the default.
func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	slog.Debug("GeminiClient.New: creating client", "model", model)
	return &GeminiClient{client: client, model: model}, nil
}

// ProviderName returns the provider identifier.
func (c *GeminiClient) ProviderName() string { return "gemini" }

// Close releases the underlying client resources.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Generate runs a content generation call and returns the generated text.
func (c *GeminiClient) Generate(ctx context.Context, params GenerationParams) GenerationResult {
	slog.Debug("GeminiClient.Generate: invoking content generation",
		"model", c.model,
		"promptLength", len(params.Prompt),
		"responseFormat", params.ResponseFormat)

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(float32(params.Temperature))
	if params.ResponseFormat == ResponseFormatJSON {
		model.ResponseMIMEType = "application/json"
	}
	if params.SystemPrompt != "" {
		model.SystemInstruction = &gemini.Content{
			Parts: []gemini.Part{gemini.Text(params.SystemPrompt)},
		}
	}

	resp, err := model.GenerateContent(ctx, gemini.Text(params.Prompt))
	if err != nil {
		slog.Error("GeminiClient.Generate: content generation failed", "error", err)
		return failureResult(err.Error(), c.ProviderName())
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		slog.Error("GeminiClient.Generate: no response candidates")
		return failureResult("no response candidates", c.ProviderName())
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(gemini.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	content := sb.String()
	slog.Debug("GeminiClient.Generate: generation succeeded", "contentLength", len(content))
	return successResult(content, c.ProviderName())
}
