// Package flow implements the guided travel-preference conversation: a
// resumable, step-gated dialogue that extracts structured fields from
// free-form turns, never regresses confirmed data, tracks rejected
// suggestions, and derives step progression from the data itself.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tripkit/tripkit/internal/genai"
	"github.com/tripkit/tripkit/internal/models"
	"github.com/tripkit/tripkit/internal/store"
)

// ChatAgent orchestrates conversation turns: it loads or creates session
// state, runs the per-turn step logic, applies the routing decision, and
// persists the result. Safe for concurrent use; turns for the same session
// are serialized so no merged field is lost to a same-session race.
type ChatAgent struct {
	store store.Store
	llm   genai.ClientInterface

	mu           sync.Mutex
	sessionLocks map[string]*sync.Mutex
}

// NewChatAgent creates a ChatAgent backed by the given store and generation
// client.
func NewChatAgent(st store.Store, llm genai.ClientInterface) *ChatAgent {
	return &ChatAgent{
		store:        st,
		llm:          llm,
		sessionLocks: make(map[string]*sync.Mutex),
	}
}

// Chat processes one inbound message for a session and returns the formatted
// reply. A session with no stored state (or an empty message log) starts
// fresh; otherwise the stored conversation resumes with its confirmed data
// intact. Chat never returns an error: any internal failure is logged and
// surfaced as a fixed apologetic reply.
func (a *ChatAgent) Chat(ctx context.Context, message, sessionID, userID string) models.ChatReply {
	lock := a.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	reply, err := a.runTurn(ctx, message, sessionID, userID)
	if err != nil {
		slog.Error("ChatAgent.Chat: turn failed", "sessionID", sessionID, "error", err)
		return errorReply(sessionID)
	}
	return reply
}

// runTurn executes the read-modify-write cycle for one turn.
func (a *ChatAgent) runTurn(ctx context.Context, message, sessionID, userID string) (models.ChatReply, error) {
	prior, err := a.store.GetConversationState(sessionID)
	if err != nil {
		return models.ChatReply{}, fmt.Errorf("failed to load conversation state: %w", err)
	}

	var state *models.ConversationState
	if prior == nil || len(prior.Messages) == 0 {
		slog.Info("ChatAgent.runTurn: starting new conversation", "sessionID", sessionID)
		state = models.NewConversationState(sessionID, userID)
	} else {
		slog.Info("ChatAgent.runTurn: resuming conversation", "sessionID", sessionID, "currentStep", prior.CurrentStep)
		state = prior
		state.Status = models.StatusActive
		state.Error = ""
	}
	state.AppendMessage(models.RoleUser, message)

	updated := a.processMessage(ctx, *state)
	if routeAfterProcess(updated) == routeFinalize {
		updated = finalize(updated)
	}
	updated.UpdatedAt = time.Now()

	if err := a.store.SaveConversationState(updated); err != nil {
		return models.ChatReply{}, fmt.Errorf("failed to persist conversation state: %w", err)
	}

	slog.Info("ChatAgent.runTurn: turn complete", "sessionID", sessionID,
		"currentStep", updated.CurrentStep, "isComplete", updated.IsComplete, "status", updated.Status)
	return formatReply(updated), nil
}

// GetConversationHistory returns the role and content pairs of a session's
// message log. A session with no stored state yields an empty list.
func (a *ChatAgent) GetConversationHistory(sessionID string) ([]models.HistoryMessage, error) {
	state, err := a.store.GetConversationState(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation state: %w", err)
	}
	if state == nil {
		return []models.HistoryMessage{}, nil
	}

	history := make([]models.HistoryMessage, 0, len(state.Messages))
	for _, msg := range state.Messages {
		history = append(history, models.HistoryMessage{Role: msg.Role, Content: msg.Content})
	}
	return history, nil
}

// GetSessionState returns a summary of a session for recovery UIs, or nil
// when the session has no stored state.
func (a *ChatAgent) GetSessionState(sessionID string) (*models.SessionSummary, error) {
	state, err := a.store.GetConversationState(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation state: %w", err)
	}
	if state == nil {
		return nil, nil
	}

	return &models.SessionSummary{
		SessionID:     state.SessionID,
		CurrentStep:   state.CurrentStep,
		CollectedData: state.CollectedData,
		RejectedItems: state.RejectedItems,
		IsComplete:    state.IsComplete,
		MessageCount:  len(state.Messages),
	}, nil
}

// sessionLock returns the mutex serializing turns for a session, creating it
// on first use.
func (a *ChatAgent) sessionLock(sessionID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.sessionLocks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		a.sessionLocks[sessionID] = lock
	}
	return lock
}

// formatReply maps internal state to the external reply contract.
func formatReply(state models.ConversationState) models.ChatReply {
	return models.ChatReply{
		Reply:            state.AssistantReply,
		CurrentStep:      state.CurrentStep,
		NextStep:         state.NextStep,
		IsComplete:       state.IsComplete,
		CollectedData:    state.CollectedData,
		RejectedItems:    state.RejectedItems,
		SuggestedOptions: state.SuggestedOptions,
		SessionID:        state.SessionID,
	}
}

// errorReply is the outermost safety net: a generic apology with a
// reset-looking state snapshot. Nothing is persisted on this path.
func errorReply(sessionID string) models.ChatReply {
	return models.ChatReply{
		Reply:            controllerFailureReply,
		CurrentStep:      models.StepGreeting,
		NextStep:         models.StepGreeting,
		IsComplete:       false,
		CollectedData:    models.CollectedData{},
		RejectedItems:    models.RejectedItems{},
		SuggestedOptions: []string{},
		SessionID:        sessionID,
	}
}
