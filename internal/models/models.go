// Package models defines the core data structures for Trip Kit.
//
// It includes the wire shapes for the chat, recommendation, and image
// generation endpoints, which are shared across modules.
package models

import "errors"

// Validation constants for input validation
const (
	// MaxChatMessageLength defines the maximum allowed length for a chat message
	MaxChatMessageLength = 4096
	// MaxSessionIDLength defines the maximum allowed length for a session identifier
	MaxSessionIDLength = 128
)

// Error variables for better error handling and testability
var (
	ErrEmptyMessage       = errors.New("message cannot be empty")
	ErrEmptySessionID     = errors.New("session id cannot be empty")
	ErrMessageTooLong     = errors.New("message exceeds maximum length")
	ErrSessionIDTooLong   = errors.New("session id exceeds maximum length")
	ErrEmptyPrompt        = errors.New("prompt cannot be empty")
	ErrEmptyDestination   = errors.New("destination cannot be empty")
	ErrInvalidTemperature = errors.New("temperature must be between 0.0 and 2.0")
)

// ChatRequest is the inbound payload for POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
}

// Validate checks the chat request for well-formedness.
func (r ChatRequest) Validate() error {
	if r.Message == "" {
		return ErrEmptyMessage
	}
	if len(r.Message) > MaxChatMessageLength {
		return ErrMessageTooLong
	}
	if r.SessionID == "" {
		return ErrEmptySessionID
	}
	if len(r.SessionID) > MaxSessionIDLength {
		return ErrSessionIDTooLong
	}
	return nil
}

// ChatReply is the outcome of one conversation turn, returned by the flow
// controller and serialized as the /api/chat response body.
type ChatReply struct {
	Reply            string        `json:"reply"`
	CurrentStep      Step          `json:"currentStep"`
	NextStep         Step          `json:"nextStep"`
	IsComplete       bool          `json:"isComplete"`
	CollectedData    CollectedData `json:"collectedData"`
	RejectedItems    RejectedItems `json:"rejectedItems"`
	SuggestedOptions []string      `json:"suggestedOptions"`
	SessionID        string        `json:"sessionId"`
}

// HistoryMessage is one entry of the session-history query response.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionSummary is the session-state query response used by session-recovery UIs.
type SessionSummary struct {
	SessionID     string        `json:"sessionId"`
	CurrentStep   Step          `json:"currentStep"`
	CollectedData CollectedData `json:"collectedData"`
	RejectedItems RejectedItems `json:"rejectedItems"`
	IsComplete    bool          `json:"isComplete"`
	MessageCount  int           `json:"messageCount"`
}

// RecommendationRequest is the inbound payload for POST /api/recommendations.
type RecommendationRequest struct {
	Mood        string   `json:"mood,omitempty"`
	Aesthetic   string   `json:"aesthetic,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	Concept     string   `json:"concept,omitempty"`
	Destination string   `json:"destination,omitempty"`
	TravelScene string   `json:"travelScene,omitempty"`
}

// Destination is a single recommended travel destination.
type Destination struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	City             string        `json:"city"`
	Country          string        `json:"country"`
	Description      string        `json:"description"`
	MatchReason      string        `json:"matchReason,omitempty"`
	Tags             []string      `json:"tags,omitempty"`
	PhotographyScore int           `json:"photographyScore,omitempty"`
	EstimatedBudget  string        `json:"estimatedBudget,omitempty"`
	Activities       []string      `json:"activities,omitempty"`
	Place            *PlaceDetails `json:"placeDetails,omitempty"`
}

// PlaceDetails holds enrichment data from the places lookup service.
type PlaceDetails struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
}

// RecommendationResponse is the /api/recommendations response body.
type RecommendationResponse struct {
	Destinations []Destination `json:"destinations"`
}

// ChatContext carries the collected conversation fields into image generation.
type ChatContext struct {
	City           string `json:"city,omitempty"`
	SpotName       string `json:"spotName,omitempty"`
	MainAction     string `json:"mainAction,omitempty"`
	OutfitStyle    string `json:"outfitStyle,omitempty"`
	PosePreference string `json:"posePreference,omitempty"`
	FilmType       string `json:"filmType,omitempty"`
	CameraModel    string `json:"cameraModel,omitempty"`
}

// GenerateRequest is the inbound payload for POST /api/generate.
type GenerateRequest struct {
	Destination          string       `json:"destination"`
	Concept              string       `json:"concept,omitempty"`
	FilmType             string       `json:"filmType,omitempty"`
	FilmStock            string       `json:"filmStock,omitempty"`
	FilmStyleDescription string       `json:"filmStyleDescription,omitempty"`
	OutfitStyle          string       `json:"outfitStyle,omitempty"`
	AdditionalPrompt     string       `json:"additionalPrompt,omitempty"`
	ConversationSummary  string       `json:"conversationSummary,omitempty"`
	ChatContext          *ChatContext `json:"chatContext,omitempty"`
}

// Validate checks the generate request for well-formedness.
func (r GenerateRequest) Validate() error {
	if r.Destination == "" {
		return ErrEmptyDestination
	}
	return nil
}

// GenerateResponse is the /api/generate response body.
type GenerateResponse struct {
	Status            string            `json:"status"`
	ImageURL          string            `json:"imageUrl,omitempty"`
	OptimizedPrompt   string            `json:"optimizedPrompt,omitempty"`
	ExtractedKeywords []string          `json:"extractedKeywords,omitempty"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Error             string            `json:"error,omitempty"`
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message and result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
