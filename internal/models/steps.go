// Package models defines step and status enumerations for the conversation flow.
package models

// Step represents a stage of the guided data-collection conversation.
type Step string

// Conversation steps in collection order. Complete is terminal and absorbing.
const (
	StepGreeting Step = "greeting"
	StepCity     Step = "city"
	StepSpot     Step = "spot"
	StepAction   Step = "action"
	StepConcept  Step = "concept"
	StepOutfit   Step = "outfit"
	StepPose     Step = "pose"
	StepFilm     Step = "film"
	StepCamera   Step = "camera"
	StepComplete Step = "complete"
)

// stepTransitions maps each step to its fixed successor.
var stepTransitions = map[Step]Step{
	StepGreeting: StepCity,
	StepCity:     StepSpot,
	StepSpot:     StepAction,
	StepAction:   StepConcept,
	StepConcept:  StepOutfit,
	StepOutfit:   StepPose,
	StepPose:     StepFilm,
	StepFilm:     StepCamera,
	StepCamera:   StepComplete,
	StepComplete: StepComplete,
}

// NextStep returns the fixed successor of s. Unknown steps resolve to complete.
func NextStep(s Step) Step {
	if next, ok := stepTransitions[s]; ok {
		return next
	}
	return StepComplete
}

// AllSteps lists the 10 conversation steps in order.
func AllSteps() []Step {
	return []Step{
		StepGreeting, StepCity, StepSpot, StepAction, StepConcept,
		StepOutfit, StepPose, StepFilm, StepCamera, StepComplete,
	}
}

// IsValidStep reports whether s is one of the 10 enumerated steps.
func IsValidStep(s Step) bool {
	_, ok := stepTransitions[s]
	return ok
}

// ChatStatus represents the processing status of a conversation.
type ChatStatus string

// Conversation status constants.
const (
	StatusActive       ChatStatus = "active"
	StatusWaitingInput ChatStatus = "waiting_input"
	StatusProcessing   ChatStatus = "processing"
	StatusCompleted    ChatStatus = "completed"
	StatusFailed       ChatStatus = "failed"
)
