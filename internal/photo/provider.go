// Package photo turns a completed conversation or an explicit request into a
// stylized travel photograph: it translates Korean inputs, builds a film-look
// prompt, and calls an image generation provider.
package photo

import "context"

// ImageParams holds the inputs of one image generation call. Quality and
// Style follow the DALL-E vocabulary; providers without an equivalent knob
// ignore them.
type ImageParams struct {
	Prompt  string
	Size    string
	Quality string
	Style   string
}

// ImageResult is the outcome of one image generation call. URL points at the
// generated image; providers that return raw bytes encode them as a data URL.
type ImageResult struct {
	Success  bool
	URL      string
	Error    string
	Provider string
}

// Defaults applied when a request does not specify generation settings.
const (
	DefaultImageSize    = "1024x1024"
	DefaultImageQuality = "standard"
	DefaultImageStyle   = "vivid"
)

// ImageProvider generates an image from a text prompt.
type ImageProvider interface {
	GenerateImage(ctx context.Context, params ImageParams) ImageResult
	ProviderName() string
}
