// Package models defines the persisted state structures for Trip Kit conversations.
package models

import "time"

// Message roles stored in the conversation log.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationMessage represents a single message in the conversation history.
type ConversationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// CollectedData holds the 8 travel preference fields gathered during the
// conversation. A nil field has not been confirmed yet; a confirmed field is
// never set back to nil by a merge.
type CollectedData struct {
	City           *string `json:"city"`
	SpotName       *string `json:"spotName"`
	MainAction     *string `json:"mainAction"`
	ConceptID      *string `json:"conceptId"`
	OutfitStyle    *string `json:"outfitStyle"`
	PosePreference *string `json:"posePreference"`
	FilmType       *string `json:"filmType"`
	CameraModel    *string `json:"cameraModel"`
}

// Confirmed returns the non-nil fields as a name→value map, in collection order.
func (c CollectedData) Confirmed() []ConfirmedField {
	var out []ConfirmedField
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"city", c.City},
		{"spotName", c.SpotName},
		{"mainAction", c.MainAction},
		{"conceptId", c.ConceptID},
		{"outfitStyle", c.OutfitStyle},
		{"posePreference", c.PosePreference},
		{"filmType", c.FilmType},
		{"cameraModel", c.CameraModel},
	} {
		if f.value != nil {
			out = append(out, ConfirmedField{Name: f.name, Value: *f.value})
		}
	}
	return out
}

// ConfirmedField is a confirmed collected-data entry.
type ConfirmedField struct {
	Name  string
	Value string
}

// AllFilled reports whether every collected-data field has been confirmed.
func (c CollectedData) AllFilled() bool {
	return c.City != nil && c.SpotName != nil && c.MainAction != nil &&
		c.ConceptID != nil && c.OutfitStyle != nil && c.PosePreference != nil &&
		c.FilmType != nil && c.CameraModel != nil
}

// RejectedItems tracks values the user explicitly declined, one category per
// collected-data field. Categories only grow; entries are never removed.
type RejectedItems struct {
	Cities   []string `json:"cities"`
	Spots    []string `json:"spots"`
	Actions  []string `json:"actions"`
	Concepts []string `json:"concepts"`
	Outfits  []string `json:"outfits"`
	Poses    []string `json:"poses"`
	Films    []string `json:"films"`
	Cameras  []string `json:"cameras"`
}

// Flatten returns every rejected value across all categories, in category order.
func (r RejectedItems) Flatten() []string {
	var out []string
	for _, items := range [][]string{
		r.Cities, r.Spots, r.Actions, r.Concepts,
		r.Outfits, r.Poses, r.Films, r.Cameras,
	} {
		out = append(out, items...)
	}
	return out
}

// ConversationState is the unit of persisted truth for one chat session.
type ConversationState struct {
	SessionID        string                `json:"session_id"`
	UserID           string                `json:"user_id,omitempty"`
	Messages         []ConversationMessage `json:"messages"`
	CurrentStep      Step                  `json:"current_step"`
	NextStep         Step                  `json:"next_step"`
	CollectedData    CollectedData         `json:"collected_data"`
	RejectedItems    RejectedItems         `json:"rejected_items"`
	AssistantReply   string                `json:"assistant_reply"`
	SuggestedOptions []string              `json:"suggested_options"`
	IsComplete       bool                  `json:"is_complete"`
	Status           ChatStatus            `json:"status"`
	Error            string                `json:"error,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// NewConversationState creates the initial state for a freshly seen session.
func NewConversationState(sessionID, userID string) *ConversationState {
	now := time.Now()
	return &ConversationState{
		SessionID:        sessionID,
		UserID:           userID,
		Messages:         []ConversationMessage{},
		CurrentStep:      StepGreeting,
		NextStep:         StepGreeting,
		CollectedData:    CollectedData{},
		RejectedItems:    RejectedItems{},
		SuggestedOptions: []string{},
		IsComplete:       false,
		Status:           StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// LastUserMessage returns the content of the most recent user-authored message
// and whether one exists.
func (s *ConversationState) LastUserMessage() (string, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i].Content, true
		}
	}
	return "", false
}

// AppendMessage appends a message to the conversation log.
func (s *ConversationState) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, ConversationMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}
