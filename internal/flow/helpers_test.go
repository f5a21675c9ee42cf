package flow

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/tripkit/tripkit/internal/genai"
	"github.com/tripkit/tripkit/internal/models"
	"github.com/tripkit/tripkit/internal/store"
)

// mockGenClient is a scripted generation client. Each call consumes the next
// queued result; calls beyond the script fail.
type mockGenClient struct {
	mu      sync.Mutex
	results []genai.GenerationResult
	calls   []genai.GenerationParams
}

func (m *mockGenClient) Generate(_ context.Context, params genai.GenerationParams) genai.GenerationResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, params)
	if len(m.results) == 0 {
		return genai.GenerationResult{Success: false, Error: "mock exhausted", Provider: "mock"}
	}
	result := m.results[0]
	m.results = m.results[1:]
	return result
}

func (m *mockGenClient) ProviderName() string { return "mock" }

func (m *mockGenClient) queue(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, genai.GenerationResult{Success: true, Content: content, Provider: "mock"})
}

func (m *mockGenClient) queueFailure(errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, genai.GenerationResult{Success: false, Error: errMsg, Provider: "mock"})
}

func (m *mockGenClient) lastCall(t *testing.T) genai.GenerationParams {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		t.Fatal("no generation calls recorded")
	}
	return m.calls[len(m.calls)-1]
}

func newTestAgent() (*ChatAgent, *mockGenClient, *store.InMemoryStore) {
	st := store.NewInMemoryStore()
	llm := &mockGenClient{}
	return NewChatAgent(st, llm), llm, st
}

// envelope builds a model reply JSON string in the instructed shape.
func envelope(t *testing.T, reply string, collected map[string]any, rejected map[string][]string) string {
	t.Helper()
	payload := map[string]any{
		"reply":       reply,
		"currentStep": "greeting",
		"nextStep":    "greeting",
		"isComplete":  false,
		"collectedData": map[string]any{
			"city": nil, "spotName": nil, "mainAction": nil, "conceptId": nil,
			"outfitStyle": nil, "posePreference": nil, "filmType": nil, "cameraModel": nil,
		},
		"rejectedItems": map[string]any{
			"cities": []string{}, "spots": []string{}, "actions": []string{}, "concepts": []string{},
			"outfits": []string{}, "poses": []string{}, "films": []string{}, "cameras": []string{},
		},
		"suggestedOptions": []string{},
	}
	for field, value := range collected {
		payload["collectedData"].(map[string]any)[field] = value
	}
	for category, values := range rejected {
		payload["rejectedItems"].(map[string]any)[category] = values
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return string(raw)
}

func strptr(s string) *string { return &s }

func mustGetState(t *testing.T, st store.Store, sessionID string) *models.ConversationState {
	t.Helper()
	state, err := st.GetConversationState(sessionID)
	if err != nil {
		t.Fatalf("GetConversationState() error = %v", err)
	}
	if state == nil {
		t.Fatalf("no stored state for session %q", sessionID)
	}
	return state
}
