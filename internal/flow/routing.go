package flow

import (
	"log/slog"

	"github.com/tripkit/tripkit/internal/models"
)

// route names the two states reachable after a turn is processed.
type route string

const (
	routeFinalize  route = "finalize"
	routeWaitInput route = "wait_input"
)

// routeAfterProcess decides whether the conversation is finished or should
// pause and await the next user message.
func routeAfterProcess(state models.ConversationState) route {
	if state.IsComplete || state.CurrentStep == models.StepComplete {
		return routeFinalize
	}
	return routeWaitInput
}

// finalize applies the terminal state update. Complete is absorbing; every
// later turn for the session routes straight back here.
func finalize(state models.ConversationState) models.ConversationState {
	slog.Info("ChatAgent.finalize: conversation complete", "sessionID", state.SessionID)
	state.CurrentStep = models.StepComplete
	state.NextStep = models.StepComplete
	state.IsComplete = true
	state.Status = models.StatusCompleted
	return state
}
