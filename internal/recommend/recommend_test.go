package recommend

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tripkit/tripkit/internal/genai"
	"github.com/tripkit/tripkit/internal/models"
)

type stubGenClient struct {
	result genai.GenerationResult
	last   genai.GenerationParams
}

func (s *stubGenClient) Generate(_ context.Context, params genai.GenerationParams) genai.GenerationResult {
	s.last = params
	return s.result
}

func (s *stubGenClient) ProviderName() string { return "stub" }

type stubPlaces struct {
	mu      sync.Mutex
	queries []string
	details *models.PlaceDetails
	err     error
}

func (s *stubPlaces) Lookup(_ context.Context, query string) (*models.PlaceDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	return s.details, s.err
}

const destinationsJSON = `{"destinations":[
	{"id":"dest_1","name":"Gordes","city":"Gordes","country":"France","description":"A cliffside village.","matchReason":"Vintage charm.","tags":["provence"],"photographyScore":9,"estimatedBudget":"$$"},
	{"id":"dest_2","name":"Naoshima","city":"Naoshima","country":"Japan","description":"An art island.","matchReason":"Art and nature.","tags":["art"],"photographyScore":10,"estimatedBudget":"$$"}
]}`

func TestRecommendParsesDestinations(t *testing.T) {
	llm := &stubGenClient{result: genai.GenerationResult{Success: true, Content: destinationsJSON}}
	svc := NewService(llm, nil)

	resp := svc.Recommend(context.Background(), models.RecommendationRequest{
		Mood: "nostalgic", Concept: "filmlog", Interests: []string{"film photography"},
	})

	if len(resp.Destinations) != 2 {
		t.Fatalf("destinations = %d, want 2", len(resp.Destinations))
	}
	if resp.Destinations[0].Name != "Gordes" || resp.Destinations[1].Country != "Japan" {
		t.Errorf("destinations decoded wrong: %+v", resp.Destinations)
	}

	if llm.last.Temperature != recommendTemperature {
		t.Errorf("Temperature = %v, want %v", llm.last.Temperature, recommendTemperature)
	}
	if llm.last.ResponseFormat != genai.ResponseFormatJSON {
		t.Errorf("ResponseFormat = %v, want json", llm.last.ResponseFormat)
	}
	if !strings.Contains(llm.last.Prompt, "Mood: nostalgic") {
		t.Errorf("prompt missing mood: %q", llm.last.Prompt)
	}
	if !strings.Contains(llm.last.Prompt, moodKeywords["nostalgic"]) {
		t.Errorf("prompt missing mood keywords: %q", llm.last.Prompt)
	}
	if !strings.Contains(llm.last.Prompt, conceptVibes["filmlog"]) {
		t.Errorf("prompt missing concept vibe: %q", llm.last.Prompt)
	}
}

func TestRecommendFallsBackOnGenerationFailure(t *testing.T) {
	llm := &stubGenClient{result: genai.GenerationResult{Success: false, Error: "boom"}}
	svc := NewService(llm, nil)

	resp := svc.Recommend(context.Background(), models.RecommendationRequest{})
	if len(resp.Destinations) != 3 {
		t.Fatalf("fallback destinations = %d, want 3", len(resp.Destinations))
	}
	if resp.Destinations[0].ID != "dest_fallback_1" {
		t.Errorf("fallback id = %q", resp.Destinations[0].ID)
	}
}

func TestRecommendFallsBackOnUnparseableOutput(t *testing.T) {
	llm := &stubGenClient{result: genai.GenerationResult{Success: true, Content: "I cannot produce JSON today."}}
	svc := NewService(llm, nil)

	resp := svc.Recommend(context.Background(), models.RecommendationRequest{})
	if len(resp.Destinations) != 3 {
		t.Fatalf("fallback destinations = %d, want 3", len(resp.Destinations))
	}
}

func TestParseDestinationsUnwrapsFencesAndProse(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bare JSON", destinationsJSON},
		{"fenced", "```json\n" + destinationsJSON + "\n```"},
		{"prose wrapped", "Here are your spots!\n" + destinationsJSON + "\nEnjoy!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dests, err := parseDestinations(tt.content)
			if err != nil {
				t.Fatalf("parseDestinations() error = %v", err)
			}
			if len(dests) != 2 {
				t.Errorf("destinations = %d, want 2", len(dests))
			}
		})
	}
}

func TestParseDestinationsRejectsEmpty(t *testing.T) {
	if _, err := parseDestinations(`{"destinations":[]}`); err == nil {
		t.Error("empty destination list accepted")
	}
	if _, err := parseDestinations("no json at all"); err == nil {
		t.Error("plain prose accepted")
	}
}

func TestRecommendEnrichesWithPlaces(t *testing.T) {
	llm := &stubGenClient{result: genai.GenerationResult{Success: true, Content: destinationsJSON}}
	places := &stubPlaces{details: &models.PlaceDetails{Name: "Gordes", Rating: 4.7, PlaceID: "p1"}}
	svc := NewService(llm, places)

	resp := svc.Recommend(context.Background(), models.RecommendationRequest{})

	if len(places.queries) != 2 {
		t.Fatalf("lookup calls = %d, want 2", len(places.queries))
	}
	for _, dest := range resp.Destinations {
		if dest.Place == nil {
			t.Errorf("destination %s not enriched", dest.Name)
		}
	}

	found := false
	for _, q := range places.queries {
		if strings.Contains(q, "Gordes") && strings.Contains(q, "France") {
			found = true
		}
	}
	if !found {
		t.Errorf("lookup queries missing name+country: %v", places.queries)
	}
}

func TestRecommendSurvivesEnrichmentFailure(t *testing.T) {
	llm := &stubGenClient{result: genai.GenerationResult{Success: true, Content: destinationsJSON}}
	places := &stubPlaces{err: errors.New("quota exceeded")}
	svc := NewService(llm, places)

	resp := svc.Recommend(context.Background(), models.RecommendationRequest{})
	if len(resp.Destinations) != 2 {
		t.Fatalf("destinations = %d, want 2 despite enrichment failure", len(resp.Destinations))
	}
	for _, dest := range resp.Destinations {
		if dest.Place != nil {
			t.Errorf("destination %s has place details from failed lookup", dest.Name)
		}
	}
}
