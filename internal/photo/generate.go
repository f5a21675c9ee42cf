package photo

import (
	"context"
	"log/slog"

	"github.com/tripkit/tripkit/internal/models"
)

// Service turns a generate request into a finished travel photograph:
// translate Korean fields, build the prompt, call the image provider.
type Service struct {
	provider   ImageProvider
	translator *Translator
}

// NewService creates a photo generation service. translator may be nil, in
// which case Korean fields pass through untranslated.
func NewService(provider ImageProvider, translator *Translator) *Service {
	return &Service{provider: provider, translator: translator}
}

// Generate produces an image for the request. Failures are reported in the
// response status rather than as an error so the caller always gets the
// prompt and keyword metadata that were built.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) models.GenerateResponse {
	slog.Info("Photo.Generate: generating image", "destination", req.Destination, "concept", req.Concept)

	translated := map[string]string{}
	if s.translator != nil {
		translated = s.translator.TranslateFields(ctx, translatableFields(req))
	}

	prompt := BuildPrompt(req, translated)
	slog.Debug("Photo.Generate: prompt built", "length", len(prompt))

	result := s.provider.GenerateImage(ctx, ImageParams{
		Prompt:  prompt,
		Size:    DefaultImageSize,
		Quality: DefaultImageQuality,
		Style:   DefaultImageStyle,
	})
	if !result.Success {
		slog.Error("Photo.Generate: image generation failed", "error", result.Error)
		return models.GenerateResponse{Status: "error", Error: result.Error}
	}

	return models.GenerateResponse{
		Status:            "success",
		ImageURL:          result.URL,
		OptimizedPrompt:   prompt,
		ExtractedKeywords: ExtractKeywords(req),
		Metadata: map[string]string{
			"concept":     req.Concept,
			"filmStock":   req.FilmStock,
			"destination": req.Destination,
			"provider":    result.Provider,
		},
	}
}

// translatableFields collects the request fields that may carry Korean text.
func translatableFields(req models.GenerateRequest) map[string]string {
	fields := map[string]string{}
	if req.Destination != "" {
		fields["destination"] = req.Destination
	}
	if req.AdditionalPrompt != "" {
		fields["additionalPrompt"] = req.AdditionalPrompt
	}
	if req.OutfitStyle != "" {
		fields["outfitStyle"] = req.OutfitStyle
	}
	if ctx := req.ChatContext; ctx != nil {
		if ctx.City != "" {
			fields["city"] = ctx.City
		}
		if ctx.SpotName != "" {
			fields["spotName"] = ctx.SpotName
		}
		if ctx.MainAction != "" {
			fields["mainAction"] = ctx.MainAction
		}
		if ctx.OutfitStyle != "" {
			fields["chatOutfitStyle"] = ctx.OutfitStyle
		}
		if ctx.PosePreference != "" {
			fields["posePreference"] = ctx.PosePreference
		}
	}
	return fields
}
