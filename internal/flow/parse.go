package flow

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tripkit/tripkit/internal/models"
)

// llmEnvelope is the JSON object the conversation model is instructed to
// return. Step fields the model reports are deliberately not decoded; steps
// are recomputed from the merged data instead. Unknown keys are ignored.
type llmEnvelope struct {
	Reply            string                `json:"reply"`
	CollectedData    *models.CollectedData `json:"collectedData"`
	RejectedItems    *models.RejectedItems `json:"rejectedItems"`
	SuggestedOptions []string              `json:"suggestedOptions"`
}

var (
	fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	braceSpanPattern   = regexp.MustCompile(`(?s)\{.*\}`)

	// jsonResiduePattern matches JSON-object-shaped substrings with up to one
	// level of nested braces, for stripping leaked payloads from reply text.
	jsonResiduePattern   = regexp.MustCompile(`\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
	fencedResiduePattern = regexp.MustCompile("(?s)```(?:json)?.*?```")
	excessNewlinePattern = regexp.MustCompile(`\n{3,}`)
)

// extractEnvelope pulls a JSON object out of raw generated text. Models wrap
// their JSON in markdown fences or surrounding prose often enough that three
// strategies are tried in order: direct parse, fenced code blocks, then the
// first top-level brace span. Returns false when no strategy yields an object.
func extractEnvelope(content string) (llmEnvelope, bool) {
	if env, ok := parseEnvelope(content); ok {
		return env, true
	}

	for _, match := range fencedBlockPattern.FindAllStringSubmatch(content, -1) {
		if env, ok := parseEnvelope(strings.TrimSpace(match[1])); ok {
			return env, true
		}
	}

	if span := braceSpanPattern.FindString(content); span != "" {
		if env, ok := parseEnvelope(span); ok {
			return env, true
		}
	}

	return llmEnvelope{}, false
}

// parseEnvelope decodes candidate text, accepting only a JSON object.
func parseEnvelope(candidate string) (llmEnvelope, bool) {
	trimmed := strings.TrimSpace(candidate)
	if !strings.HasPrefix(trimmed, "{") {
		return llmEnvelope{}, false
	}
	var env llmEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return llmEnvelope{}, false
	}
	return env, true
}

// sanitizeReply strips structured payloads the model leaked into reply text:
// JSON-object-shaped substrings, fenced code blocks, and runs of blank lines.
// An empty result is replaced with a fixed "please repeat" prompt. The
// function is idempotent.
func sanitizeReply(reply string) string {
	if reply == "" {
		return pleaseRepeatReply
	}

	// Stripping one nesting level can expose an enclosing object, so repeat
	// until a pass removes nothing.
	sanitized := reply
	for {
		stripped := jsonResiduePattern.ReplaceAllString(sanitized, "")
		stripped = fencedResiduePattern.ReplaceAllString(stripped, "")
		if stripped == sanitized {
			break
		}
		sanitized = stripped
	}
	sanitized = excessNewlinePattern.ReplaceAllString(sanitized, "\n\n")
	sanitized = strings.TrimSpace(sanitized)

	if sanitized == "" {
		return pleaseRepeatReply
	}
	return sanitized
}
