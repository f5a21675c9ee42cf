// Package recommend generates hidden-gem travel destination recommendations
// from a user's mood, concept, and interests, with optional enrichment from
// the Google Places API.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/tripkit/tripkit/internal/genai"
	"github.com/tripkit/tripkit/internal/models"
)

// recommendTemperature favors variety over determinism for suggestions.
const recommendTemperature = 0.8

// maxEnrichWorkers bounds concurrent places lookups per request.
const maxEnrichWorkers = 5

// conceptVibes maps concept identifiers to their atmosphere keywords.
var conceptVibes = map[string]string{
	"flaneur":  "urban wandering, literary atmosphere, intellectual charm, quiet observation",
	"filmlog":  "vintage warmth, nostalgic moments, golden hour glow, retro aesthetic",
	"midnight": "artistic bohemian, dramatic shadows, 1920s Paris salon atmosphere",
	"pastoral": "serene nature, soft sunlight, peaceful countryside, gentle breeze",
	"noir":     "cinematic shadows, neon reflections, mysterious urban night, dramatic contrast",
	"seaside":  "ocean breeze, coastal serenity, sun-kissed memories, peaceful waves",
}

// moodKeywords expands a mood into concrete scene vocabulary for the prompt.
var moodKeywords = map[string]string{
	"romantic":    "romantic, lovely, evocative alleys, sunsets, wine",
	"adventurous": "adventure, exploration, hidden paths, locals-only, joy of discovery",
	"nostalgic":   "nostalgia, old memories, vintage, time travel, beauty of the past",
	"peaceful":    "peaceful, quiet, meditative, nature, healing",
}

const recommendSystemPrompt = `You are Trip Kit's AI travel curator. You deeply understand the user's mood and taste, and you recommend hidden places with a genuine local feel that tourists do not know about.

Core principles:
1. Never recommend overly famous or touristy places
2. Center recommendations on hidden local spots that residents love
3. Prioritize photogenic places where a once-in-a-lifetime shot is possible
4. Suggest a special experience or activity for each place
5. Carry the philosophy that travel is not just going somewhere but making a record

Respond strictly in JSON.`

// PlaceLookup resolves a destination query to real-world place details.
// Lookup may return nil with no error when nothing matches.
type PlaceLookup interface {
	Lookup(ctx context.Context, query string) (*models.PlaceDetails, error)
}

// Service produces destination recommendations. The places client is
// optional; when nil, enrichment is skipped and recommendations are served
// from generation alone.
type Service struct {
	llm    genai.ClientInterface
	places PlaceLookup
}

// NewService creates a recommendation service. places may be nil.
func NewService(llm genai.ClientInterface, places PlaceLookup) *Service {
	return &Service{llm: llm, places: places}
}

// Recommend generates three hidden destinations for the given profile. A
// generation or parse failure degrades to a fixed fallback list rather than
// an error, so the endpoint always has something to show.
func (s *Service) Recommend(ctx context.Context, req models.RecommendationRequest) models.RecommendationResponse {
	slog.Info("Recommend.Recommend: generating recommendations", "mood", req.Mood, "concept", req.Concept)

	result := s.llm.Generate(ctx, genai.GenerationParams{
		Prompt:         buildProfilePrompt(req),
		SystemPrompt:   recommendSystemPrompt,
		Temperature:    recommendTemperature,
		ResponseFormat: genai.ResponseFormatJSON,
	})
	if !result.Success {
		slog.Error("Recommend.Recommend: generation failed, using fallback", "error", result.Error)
		return models.RecommendationResponse{Destinations: fallbackDestinations()}
	}

	destinations, err := parseDestinations(result.Content)
	if err != nil {
		slog.Warn("Recommend.Recommend: parse failed, using fallback", "error", err)
		return models.RecommendationResponse{Destinations: fallbackDestinations()}
	}

	destinations = s.enrich(ctx, destinations)
	slog.Info("Recommend.Recommend: recommendations ready", "count", len(destinations))
	return models.RecommendationResponse{Destinations: destinations}
}

// buildProfilePrompt renders the user profile with concept and mood keywords
// expanded, plus the exact JSON shape the model must return.
func buildProfilePrompt(req models.RecommendationRequest) string {
	mood := req.Mood
	if mood == "" {
		mood = "evocative"
	}
	aesthetic := req.Aesthetic
	if aesthetic == "" {
		aesthetic = "vintage"
	}
	interests := strings.Join(req.Interests, ", ")
	if interests == "" {
		interests = "photography, art"
	}
	concept := req.Concept
	if concept == "" {
		concept = "filmlog"
	}
	scene := req.TravelScene
	if scene == "" {
		scene = "a trip that captures special moments"
	}

	var b strings.Builder
	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- Mood: %s (%s)\n", mood, moodKeywords[req.Mood])
	fmt.Fprintf(&b, "- Aesthetic taste: %s\n", aesthetic)
	fmt.Fprintf(&b, "- Interests: %s\n", interests)
	fmt.Fprintf(&b, "- Chosen concept: %s (%s)\n", concept, conceptVibes[concept])
	fmt.Fprintf(&b, "- Dream travel scene: %s\n", scene)
	if req.Destination != "" {
		fmt.Fprintf(&b, "- Region of interest: %s\n", req.Destination)
	}
	b.WriteString("\nBased on this profile, recommend 3 hidden destinations. Respond concisely in JSON:\n\n")
	b.WriteString(`{"destinations": [` + "\n")
	b.WriteString(`  {"id": "dest_1", "name": "place name", "city": "city", "country": "country", "description": "2 sentences", "matchReason": "1 sentence", "tags": ["3 tags"], "photographyScore": 9, "estimatedBudget": "$$"}` + "\n")
	b.WriteString("]}")
	return b.String()
}

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseDestinations decodes the generated JSON, unwrapping a markdown fence
// or surrounding prose when the model does not return bare JSON.
func parseDestinations(content string) ([]models.Destination, error) {
	var payload struct {
		Destinations []models.Destination `json:"destinations"`
	}

	candidate := content
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		if match := fencedJSONPattern.FindStringSubmatch(content); match != nil {
			candidate = match[1]
		} else if start, end := strings.Index(content, "{"), strings.LastIndex(content, "}"); start != -1 && end > start {
			candidate = content[start : end+1]
		} else {
			return nil, fmt.Errorf("no JSON object in response")
		}
		if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
			return nil, fmt.Errorf("failed to decode destinations: %w", err)
		}
	}

	if len(payload.Destinations) == 0 {
		return nil, fmt.Errorf("response contains no destinations")
	}
	return payload.Destinations, nil
}

// enrich attaches place details to each destination concurrently. Lookup
// failures leave the destination as generated; enrichment is best effort.
func (s *Service) enrich(ctx context.Context, destinations []models.Destination) []models.Destination {
	if s.places == nil || len(destinations) == 0 {
		return destinations
	}

	sem := make(chan struct{}, maxEnrichWorkers)
	var wg sync.WaitGroup
	for i := range destinations {
		wg.Add(1)
		go func(dest *models.Destination) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			query := strings.TrimSpace(fmt.Sprintf("%s %s %s", dest.Name, dest.City, dest.Country))
			details, err := s.places.Lookup(ctx, query)
			if err != nil {
				slog.Warn("Recommend.enrich: places lookup failed", "destination", dest.Name, "error", err)
				return
			}
			dest.Place = details
		}(&destinations[i])
	}
	wg.Wait()
	return destinations
}

// fallbackDestinations is served when generation or parsing fails.
func fallbackDestinations() []models.Destination {
	return []models.Destination{
		{
			ID:               "dest_fallback_1",
			Name:             "Snow-white winter at Santa Claus Village, Rovaniemi",
			City:             "Rovaniemi",
			Country:          "Finland",
			Description:      "The real home of Santa, right on the Arctic Circle.",
			MatchReason:      "Perfect if you've dreamed of a storybook Christmas.",
			Tags:             []string{"winter", "aurora", "snow"},
			PhotographyScore: 10,
			EstimatedBudget:  "$$$",
		},
		{
			ID:               "dest_fallback_2",
			Name:             "Gordes, a journey back to the Middle Ages",
			City:             "Gordes",
			Country:          "France",
			Description:      "A medieval village clinging to a Provencal cliffside.",
			MatchReason:      "Perfect if you love vintage charm and history.",
			Tags:             []string{"medieval", "provence", "lavender"},
			PhotographyScore: 10,
			EstimatedBudget:  "$$",
		},
		{
			ID:               "dest_fallback_3",
			Name:             "Naoshima, the island where art breathes",
			City:             "Naoshima",
			Country:          "Japan",
			Description:      "A small Seto Inland Sea island that is a museum in itself.",
			MatchReason:      "Perfect if you love the harmony of art and nature.",
			Tags:             []string{"art", "island", "architecture"},
			PhotographyScore: 10,
			EstimatedBudget:  "$$",
		},
	}
}
