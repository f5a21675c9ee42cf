package photo

import (
	"strings"
	"testing"

	"github.com/tripkit/tripkit/internal/models"
)

func TestBuildPromptSimple(t *testing.T) {
	req := models.GenerateRequest{
		Destination: "Kyoto",
		Concept:     "filmlog",
		FilmType:    "Kodak",
	}

	prompt := BuildPrompt(req, nil)

	if !strings.Contains(prompt, "A cinematic travel photograph at Kyoto.") {
		t.Errorf("prompt missing location line: %q", prompt)
	}
	if !strings.Contains(prompt, filmRendering["Kodak"]) {
		t.Errorf("prompt missing film rendering: %q", prompt)
	}
	if !strings.Contains(prompt, conceptVibes["filmlog"]) {
		t.Errorf("prompt missing concept vibe: %q", prompt)
	}
	if !strings.Contains(prompt, "stylish travel outfit") {
		t.Errorf("prompt missing default outfit: %q", prompt)
	}
}

func TestBuildPromptNeutralizesBrandNames(t *testing.T) {
	// Brand keywords go in as filmType but only the descriptive rendering may
	// appear in the prompt body's style line.
	for brand, rendering := range filmRendering {
		req := models.GenerateRequest{Destination: "Lisbon", FilmType: brand}
		prompt := BuildPrompt(req, nil)
		if !strings.Contains(prompt, rendering) {
			t.Errorf("brand %s: prompt missing descriptive rendering", brand)
		}
	}
}

func TestBuildPromptDetailedFromChatContext(t *testing.T) {
	req := models.GenerateRequest{
		Destination: "Paris",
		Concept:     "flaneur",
		FilmStock:   "Portra 400",
		ChatContext: &models.ChatContext{
			SpotName:       "Eiffel Tower",
			MainAction:     "drinking coffee",
			OutfitStyle:    "trench coat",
			PosePreference: "looking away from camera",
			FilmType:       "Portra 400",
			CameraModel:    "Contax T2",
		},
	}

	prompt := BuildPrompt(req, nil)

	if !strings.Contains(prompt, "Paris, specifically at Eiffel Tower") {
		t.Errorf("prompt missing spot: %q", prompt)
	}
	if !strings.Contains(prompt, "drinking coffee") {
		t.Errorf("prompt missing action: %q", prompt)
	}
	if !strings.Contains(prompt, "wearing trench coat") {
		t.Errorf("prompt missing outfit: %q", prompt)
	}
	if !strings.Contains(prompt, "looking away from camera") {
		t.Errorf("prompt missing pose: %q", prompt)
	}
	if !strings.Contains(prompt, "Shot with Contax T2") {
		t.Errorf("prompt missing camera line: %q", prompt)
	}
	if !strings.Contains(prompt, "film grain of Portra 400") {
		t.Errorf("prompt missing film stock grain line: %q", prompt)
	}
}

func TestBuildPromptSpotAlreadyInLocation(t *testing.T) {
	req := models.GenerateRequest{
		Destination: "Eiffel Tower, Paris",
		ChatContext: &models.ChatContext{SpotName: "eiffel tower", MainAction: "walking"},
	}
	prompt := BuildPrompt(req, nil)
	if strings.Contains(prompt, "specifically at") {
		t.Errorf("redundant spot clause: %q", prompt)
	}
}

func TestBuildPromptPrefersTranslatedFields(t *testing.T) {
	req := models.GenerateRequest{
		Destination: "파리",
		OutfitStyle: "트렌치코트",
		ChatContext: &models.ChatContext{MainAction: "커피 마시기"},
	}
	translated := map[string]string{
		"destination": "Paris",
		"outfitStyle": "a trench coat",
		"mainAction":  "drinking coffee",
	}

	prompt := BuildPrompt(req, translated)

	if !strings.Contains(prompt, "Paris") || strings.Contains(prompt, "파리") {
		t.Errorf("destination not translated in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "drinking coffee") || strings.Contains(prompt, "커피") {
		t.Errorf("action not translated in prompt: %q", prompt)
	}
}

func TestBuildPromptAppendsConversationSummary(t *testing.T) {
	req := models.GenerateRequest{
		Destination:         "Rome",
		ConversationSummary: "User loves early mornings and empty streets.",
	}
	prompt := BuildPrompt(req, nil)
	if !strings.HasSuffix(prompt, "Additional notes from conversation:\nUser loves early mornings and empty streets.") {
		t.Errorf("summary not appended: %q", prompt)
	}
}

func TestBuildScene(t *testing.T) {
	tests := []struct {
		action, userScene, want string
	}{
		{"drinking coffee", "at sunset", "drinking coffee. at sunset"},
		{"drinking coffee", "drinking coffee", "drinking coffee"},
		{"drinking coffee", "", "drinking coffee"},
		{"", "at sunset", "at sunset"},
		{"", "", ""},
	}
	for _, tt := range tests {
		if got := buildScene(tt.action, tt.userScene); got != tt.want {
			t.Errorf("buildScene(%q, %q) = %q, want %q", tt.action, tt.userScene, got, tt.want)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	req := models.GenerateRequest{
		Destination:      "Kyoto",
		Concept:          "filmlog",
		FilmType:         "Kodak",
		FilmStock:        "Portra 400",
		AdditionalPrompt: "golden hour by the river with friends and lanterns",
	}
	keywords := ExtractKeywords(req)
	want := []string{"Kyoto", "filmlog", "Kodak", "Portra 400", "golden", "hour", "by", "the", "river"}
	if len(keywords) != len(want) {
		t.Fatalf("keywords = %v, want %v", keywords, want)
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, keywords[i], want[i])
		}
	}

	empty := ExtractKeywords(models.GenerateRequest{Destination: "Oslo"})
	if len(empty) != 1 || empty[0] != "Oslo" {
		t.Errorf("keywords = %v, want [Oslo]", empty)
	}
}
