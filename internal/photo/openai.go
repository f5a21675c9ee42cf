package photo

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIImageProvider generates images with DALL-E.
type OpenAIImageProvider struct {
	client openai.Client
	model  openai.ImageModel
}

// NewOpenAIImageProvider initializes a DALL-E provider using the
// OPENAI_API_KEY environment variable.
func NewOpenAIImageProvider() (*OpenAIImageProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	return &OpenAIImageProvider{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ImageModelDallE3,
	}, nil
}

// ProviderName returns the provider identifier.
func (p *OpenAIImageProvider) ProviderName() string { return "openai" }

// GenerateImage produces one image and returns its hosted URL.
func (p *OpenAIImageProvider) GenerateImage(ctx context.Context, params ImageParams) ImageResult {
	slog.Debug("OpenAIImageProvider.GenerateImage: generating", "model", p.model, "promptLength", len(params.Prompt))

	size := openai.ImageGenerateParamsSize1024x1024
	switch params.Size {
	case "1792x1024":
		size = openai.ImageGenerateParamsSize1792x1024
	case "1024x1792":
		size = openai.ImageGenerateParamsSize1024x1792
	}

	quality := openai.ImageGenerateParamsQualityStandard
	if params.Quality == "hd" {
		quality = openai.ImageGenerateParamsQualityHD
	}
	style := openai.ImageGenerateParamsStyleVivid
	if params.Style == "natural" {
		style = openai.ImageGenerateParamsStyleNatural
	}

	resp, err := p.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:  params.Prompt,
		Model:   p.model,
		Size:    size,
		Quality: quality,
		Style:   style,
		N:       openai.Int(1),
	})
	if err != nil {
		slog.Error("OpenAIImageProvider.GenerateImage: generation failed", "error", err)
		return ImageResult{Success: false, Error: err.Error(), Provider: p.ProviderName()}
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		slog.Error("OpenAIImageProvider.GenerateImage: no image returned")
		return ImageResult{Success: false, Error: "no image returned", Provider: p.ProviderName()}
	}

	return ImageResult{Success: true, URL: resp.Data[0].URL, Provider: p.ProviderName()}
}
