package photo

import (
	"fmt"
	"strings"

	"github.com/tripkit/tripkit/internal/models"
)

// conceptVibes maps concept identifiers to the mood line of the image prompt.
var conceptVibes = map[string]string{
	"flaneur":  "urban wandering, literary atmosphere, intellectual charm, quiet observation",
	"filmlog":  "vintage warmth, nostalgic moments, golden hour glow, retro aesthetic",
	"midnight": "artistic bohemian, dramatic shadows, 1920s Paris salon atmosphere",
	"pastoral": "serene nature, soft sunlight, peaceful countryside, gentle breeze",
	"noir":     "cinematic shadows, neon reflections, mysterious urban night, dramatic contrast",
	"seaside":  "ocean breeze, coastal serenity, sun-kissed memories, peaceful waves",
}

// filmRendering maps film and camera brand names to descriptive rendering
// styles. Image models reject or mangle brand keywords, so prompts carry the
// look rather than the name.
var filmRendering = map[string]string{
	"FUJI":   "Fujifilm aesthetic with vibrant greens, cool blues, crisp tones, clean grain, airy and fresh atmosphere",
	"Kodak":  "Kodak Portra style with soft pastel colors, warm golden highlights, creamy shadows, nostalgic analog warmth",
	"Canon":  "Canon rendering with warm soft tones, creamy skin tones, smooth contrast, emotional and gentle",
	"Ricoh":  "Ricoh GR style with high micro-contrast, muted colors, sharp details, street photography mood",
	"Nikon":  "Nikon style with natural color accuracy, deep contrast, high sharpness, realistic and true-to-life",
	"Pentax": "Pentax vintage look with matte tones, warm shadows, noticeable grain, emotional softness",
}

// BuildPrompt renders the image generation prompt for a request. translated
// holds English replacements for Korean fields keyed by field name; a missing
// key falls back to the request's own value. A request carrying chat context
// with a spot, action, or pose gets the detailed scene prompt; otherwise the
// simple one.
func BuildPrompt(req models.GenerateRequest, translated map[string]string) string {
	pick := func(key, fallback string) string {
		if v, ok := translated[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	location := pick("destination", req.Destination)

	conceptVibe := conceptVibes[req.Concept]
	if conceptVibe == "" {
		conceptVibe = "atmospheric travel moment"
	}

	filmStyle := filmRendering[req.FilmType]
	if filmStyle == "" {
		filmStyle = req.FilmStyleDescription
	}
	if filmStyle == "" {
		filmStyle = fmt.Sprintf("shot on %s film with characteristic analog tones", req.FilmStock)
	}

	outfit := pick("outfitStyle", req.OutfitStyle)
	if outfit == "" {
		outfit = "stylish travel outfit"
	}

	var filmType, cameraModel string
	spotName := translated["spotName"]
	mainAction := translated["mainAction"]
	chatOutfit := translated["chatOutfitStyle"]
	poseDetail := translated["posePreference"]
	if ctx := req.ChatContext; ctx != nil {
		if spotName == "" {
			spotName = ctx.SpotName
		}
		if mainAction == "" {
			mainAction = ctx.MainAction
		}
		if chatOutfit == "" {
			chatOutfit = ctx.OutfitStyle
		}
		if poseDetail == "" {
			poseDetail = ctx.PosePreference
		}
		filmType = ctx.FilmType
		cameraModel = ctx.CameraModel
	}

	if chatOutfit != "" {
		outfit = chatOutfit
	}

	userScene := pick("additionalPrompt", strings.TrimSpace(req.AdditionalPrompt))
	scene := buildScene(mainAction, userScene)

	var prompt string
	if req.ChatContext != nil && (mainAction != "" || spotName != "" || poseDetail != "") {
		film := filmType
		if film == "" {
			film = req.FilmStock
		}
		prompt = detailedPrompt(location, spotName, scene, outfit, poseDetail, film, filmStyle, cameraModel, conceptVibe, req.FilmStock)
	} else {
		prompt = simplePrompt(location, outfit, filmStyle, conceptVibe)
	}

	if req.ConversationSummary != "" {
		prompt += fmt.Sprintf("\n\nAdditional notes from conversation:\n%s", req.ConversationSummary)
	}
	return prompt
}

// buildScene combines the chat's main action with the user's scene text.
func buildScene(action, userScene string) string {
	if userScene != "" && action != "" && userScene != action {
		return fmt.Sprintf("%s. %s", action, userScene)
	}
	if action != "" {
		return action
	}
	return userScene
}

func detailedPrompt(location, spotName, scene, outfit, pose, film, filmStyle, camera, vibe, filmStock string) string {
	loc := location
	if spotName != "" && !strings.Contains(strings.ToLower(location), strings.ToLower(spotName)) {
		loc = fmt.Sprintf("%s, specifically at %s", location, spotName)
	}
	cameraLine := "Classic analog film camera aesthetic"
	if camera != "" {
		cameraLine = fmt.Sprintf("Shot with %s, capturing its characteristic rendering", camera)
	}
	if scene == "" {
		scene = "enjoying a peaceful moment of travel"
	}
	if pose == "" {
		pose = "in a natural, candid pose"
	}

	return fmt.Sprintf(`A highly detailed cinematic travel photograph.

A person at %s, %s.

The person is wearing %s, %s. Their expression shows authentic, genuine emotion. Realistic body proportions and natural positioning.

Photography style: %s film with %s. %s. The mood is %s.

Technical details: Cinematic rule of thirds composition. Golden hour or soft natural light. Shallow depth of field with gentle bokeh. Authentic film grain of %s. Warm, nostalgic color tones.`,
		loc, scene, outfit, pose, film, filmStyle, cameraLine, vibe, filmStock)
}

func simplePrompt(location, outfit, filmStyle, vibe string) string {
	return fmt.Sprintf(`A cinematic travel photograph at %s.

A traveler enjoying a quiet moment, captured candidly. Wearing %s, in a relaxed pose with authentic expression.

Visual style: %s. %s. Soft film grain with warm nostalgic tones. Shallow depth of field. Beautiful natural lighting. Cinematic framing.`,
		location, outfit, filmStyle, vibe)
}

// ExtractKeywords lists the salient request fields for the response metadata.
func ExtractKeywords(req models.GenerateRequest) []string {
	candidates := []string{req.Destination, req.Concept, req.FilmType, req.FilmStock}
	if req.AdditionalPrompt != "" {
		words := strings.Fields(req.AdditionalPrompt)
		if len(words) > 5 {
			words = words[:5]
		}
		candidates = append(candidates, words...)
	}

	keywords := make([]string, 0, len(candidates))
	for _, k := range candidates {
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
