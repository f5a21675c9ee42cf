package photo

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tripkit/tripkit/internal/genai"
)

// translationTemperature keeps translations close to literal.
const translationTemperature = 0.3

const translationSystemPrompt = `You are a professional Korean to English translator for travel and photography content. Translate naturally and concisely, keeping proper nouns recognizable. Return only the translation with no commentary.`

var hangulPattern = regexp.MustCompile(`[가-힣]`)

// Translator converts Korean request fields to English before prompt
// building, since image models handle English prompts far more reliably.
type Translator struct {
	llm genai.ClientInterface
}

// NewTranslator creates a translator backed by the given generation client.
func NewTranslator(llm genai.ClientInterface) *Translator {
	return &Translator{llm: llm}
}

// HasKorean reports whether text contains Hangul characters.
func HasKorean(text string) bool {
	return hangulPattern.MatchString(text)
}

// Translate converts one Korean text to English. Text with no Hangul is
// returned as is, and any translation failure falls back to the original.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" || !HasKorean(text) {
		return text
	}

	result := t.llm.Generate(ctx, genai.GenerationParams{
		Prompt:         fmt.Sprintf("Translate to English: %s", text),
		SystemPrompt:   translationSystemPrompt,
		Temperature:    translationTemperature,
		ResponseFormat: genai.ResponseFormatText,
	})
	if !result.Success || result.Content == "" {
		slog.Warn("Translator.Translate: translation failed, using original", "error", result.Error)
		return text
	}
	return strings.Trim(strings.TrimSpace(result.Content), `"`)
}

// TranslateFields translates every Korean-bearing field in one call, using a
// labeled line format so a single generation covers the whole request. The
// returned map holds only successfully translated keys; callers fall back to
// the original value for anything missing.
func (t *Translator) TranslateFields(ctx context.Context, fields map[string]string) map[string]string {
	korean := make(map[string]string)
	for key, value := range fields {
		if value != "" && HasKorean(value) {
			korean[key] = value
		}
	}
	if len(korean) == 0 {
		return map[string]string{}
	}

	var lines []string
	for key, value := range korean {
		lines = append(lines, fmt.Sprintf("[%s]: %s", key, value))
	}

	result := t.llm.Generate(ctx, genai.GenerationParams{
		Prompt:         "Translate each labeled Korean text to English. Keep labels and format.\n\n" + strings.Join(lines, "\n"),
		SystemPrompt:   translationSystemPrompt,
		Temperature:    translationTemperature,
		ResponseFormat: genai.ResponseFormatText,
	})
	if !result.Success || result.Content == "" {
		slog.Warn("Translator.TranslateFields: batch translation failed", "error", result.Error)
		return map[string]string{}
	}

	translated := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(result.Content), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "[") {
			continue
		}
		end := strings.Index(line, "]: ")
		if end < 0 {
			continue
		}
		key := line[1:end]
		value := strings.TrimSpace(line[end+3:])
		if _, ok := korean[key]; ok && value != "" {
			translated[key] = value
		}
	}

	slog.Debug("Translator.TranslateFields: translated", "count", len(translated))
	return translated
}
