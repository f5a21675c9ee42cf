package photo

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"

	gemini "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiImageModel is the image-capable Gemini model used when none is
// configured.
const DefaultGeminiImageModel = "gemini-2.0-flash-exp"

// GeminiImageProvider generates images with Gemini's image-capable models.
// Generated bytes come back inline and are returned as a data URL.
type GeminiImageProvider struct {
	client *gemini.Client
	model  string
}

// NewGeminiImageProvider initializes a Gemini image provider using the
// GEMINI_API_KEY environment variable. An optional model overrides the
// default.
func NewGeminiImageProvider(ctx context.Context, model string) (*GeminiImageProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := gemini.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = DefaultGeminiImageModel
	}
	return &GeminiImageProvider{client: client, model: model}, nil
}

// ProviderName returns the provider identifier.
func (p *GeminiImageProvider) ProviderName() string { return "gemini" }

// Close releases the underlying client resources.
func (p *GeminiImageProvider) Close() error {
	return p.client.Close()
}

// GenerateImage produces one image and returns it as a data URL.
func (p *GeminiImageProvider) GenerateImage(ctx context.Context, params ImageParams) ImageResult {
	slog.Debug("GeminiImageProvider.GenerateImage: generating", "model", p.model, "promptLength", len(params.Prompt))

	model := p.client.GenerativeModel(p.model)
	resp, err := model.GenerateContent(ctx, gemini.Text(params.Prompt))
	if err != nil {
		slog.Error("GeminiImageProvider.GenerateImage: generation failed", "error", err)
		return ImageResult{Success: false, Error: err.Error(), Provider: p.ProviderName()}
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(gemini.Blob); ok {
				encoded := base64.StdEncoding.EncodeToString(blob.Data)
				url := fmt.Sprintf("data:%s;base64,%s", blob.MIMEType, encoded)
				return ImageResult{Success: true, URL: url, Provider: p.ProviderName()}
			}
		}
	}

	slog.Error("GeminiImageProvider.GenerateImage: no image part in response")
	return ImageResult{Success: false, Error: "no image returned", Provider: p.ProviderName()}
}
