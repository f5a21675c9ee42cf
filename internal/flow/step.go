package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tripkit/tripkit/internal/genai"
	"github.com/tripkit/tripkit/internal/models"
)

// recentContextLimit bounds how many trailing messages the prompt carries.
const recentContextLimit = 4

// recentContextMaxChars bounds the length of each quoted context message.
const recentContextMaxChars = 80

// stepToField maps the current step to the next field the model should
// collect. Camera and complete have no successor field.
var stepToField = map[models.Step]string{
	models.StepGreeting: "city (destination city)",
	models.StepCity:     "spotName (specific spot)",
	models.StepSpot:     "mainAction (main activity)",
	models.StepAction:   "conceptId (photo concept)",
	models.StepConcept:  "outfitStyle (outfit)",
	models.StepOutfit:   "posePreference (pose)",
	models.StepPose:     "filmType (film stock)",
	models.StepFilm:     "cameraModel (camera)",
}

// processMessage runs one conversation turn over a copy of the state: it
// extracts the last user message, builds a bounded prompt, invokes the
// generation client in JSON mode, and folds the result back into the state.
// The input is taken by value so a failed turn never corrupts persisted state.
func (a *ChatAgent) processMessage(ctx context.Context, state models.ConversationState) models.ConversationState {
	slog.Info("ChatAgent.processMessage: processing turn", "sessionID", state.SessionID, "currentStep", state.CurrentStep)

	userMessage, ok := state.LastUserMessage()
	if !ok {
		slog.Error("ChatAgent.processMessage: no user message in conversation log", "sessionID", state.SessionID)
		state.Status = models.StatusFailed
		state.Error = "no user message found in conversation log"
		return state
	}

	prompt := buildPrompt(state, userMessage)

	result := a.llm.Generate(ctx, genai.GenerationParams{
		Prompt:         prompt,
		SystemPrompt:   chatSystemPrompt,
		Temperature:    chatTemperature,
		ResponseFormat: genai.ResponseFormatJSON,
	})
	if !result.Success {
		slog.Error("ChatAgent.processMessage: generation failed", "sessionID", state.SessionID, "error", result.Error)
		return capabilityFailure(state, result.Error)
	}

	return applyGeneration(state, result.Content)
}

// buildPrompt assembles the per-turn prompt: the raw user message, confirmed
// data, the next field to collect, rejected values, and a short tail of the
// conversation. Empty sections are omitted entirely.
func buildPrompt(state models.ConversationState, userMessage string) string {
	parts := []string{fmt.Sprintf("User message: %s", userMessage)}

	if confirmed := state.CollectedData.Confirmed(); len(confirmed) > 0 {
		pairs := make([]string, 0, len(confirmed))
		for _, field := range confirmed {
			pairs = append(pairs, fmt.Sprintf("%s=%s", field.Name, field.Value))
		}
		parts = append(parts, fmt.Sprintf("Collected so far: %s", strings.Join(pairs, ", ")))
	}

	if nextField := stepToField[state.CurrentStep]; nextField != "" {
		parts = append(parts, fmt.Sprintf("Next field to collect: %s", nextField))
	}

	if rejected := state.RejectedItems.Flatten(); len(rejected) > 0 {
		parts = append(parts, fmt.Sprintf("Rejected items (do not re-suggest): %s", strings.Join(rejected, ", ")))
	}

	if recent := recentContext(state.Messages); len(recent) > 0 {
		parts = append(parts, "Recent conversation:\n"+strings.Join(recent, "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// recentContext renders the trailing messages as truncated role-prefixed
// lines. This is a local view for prompt sizing; the stored log is untouched.
func recentContext(messages []models.ConversationMessage) []string {
	start := len(messages) - recentContextLimit
	if start < 0 {
		start = 0
	}
	lines := make([]string, 0, len(messages)-start)
	for _, msg := range messages[start:] {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, truncate(msg.Content, recentContextMaxChars)))
	}
	return lines
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// applyGeneration folds generated text into the state. A text that yields no
// JSON object degrades to a sanitized plain reply with data and step
// untouched. A parsed envelope has its data merged, its steps recomputed from
// the merged data, and its reply sanitized.
func applyGeneration(state models.ConversationState, content string) models.ConversationState {
	env, ok := extractEnvelope(content)
	if !ok {
		slog.Warn("ChatAgent.applyGeneration: no JSON object in generated text", "sessionID", state.SessionID)
		reply := sanitizeReply(content)
		state.AssistantReply = reply
		state.AppendMessage(models.RoleAssistant, reply)
		state.Status = models.StatusActive
		return state
	}

	state.CollectedData = mergeCollectedData(state.CollectedData, env.CollectedData)
	state.RejectedItems = mergeRejectedItems(state.RejectedItems, env.RejectedItems)
	state.CurrentStep, state.NextStep, state.IsComplete = calculateStepFromData(state.CollectedData)

	reply := pleaseRepeatReply
	if env.Reply != "" {
		reply = sanitizeReply(env.Reply)
	}
	state.AssistantReply = reply
	state.AppendMessage(models.RoleAssistant, reply)

	state.SuggestedOptions = env.SuggestedOptions
	if state.SuggestedOptions == nil {
		state.SuggestedOptions = []string{}
	}

	if state.IsComplete {
		state.Status = models.StatusCompleted
	} else {
		state.Status = models.StatusActive
	}

	slog.Debug("ChatAgent.applyGeneration: turn applied",
		"sessionID", state.SessionID, "currentStep", state.CurrentStep,
		"nextStep", state.NextStep, "isComplete", state.IsComplete)
	return state
}

// capabilityFailure records a generation failure: a fixed apologetic reply,
// failed status, and the error string preserved for logs. Collected data and
// step values are left exactly as they were so the user can simply resend.
func capabilityFailure(state models.ConversationState, errMsg string) models.ConversationState {
	state.AssistantReply = capabilityFailureReply
	state.AppendMessage(models.RoleAssistant, capabilityFailureReply)
	state.Status = models.StatusFailed
	state.Error = errMsg
	return state
}
