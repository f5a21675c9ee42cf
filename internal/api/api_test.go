package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tripkit/tripkit/internal/flow"
	"github.com/tripkit/tripkit/internal/genai"
	"github.com/tripkit/tripkit/internal/models"
	"github.com/tripkit/tripkit/internal/recommend"
	"github.com/tripkit/tripkit/internal/store"
)

type scriptedGenClient struct {
	content string
	fail    bool
}

func (c *scriptedGenClient) Generate(context.Context, genai.GenerationParams) genai.GenerationResult {
	if c.fail {
		return genai.GenerationResult{Success: false, Error: "scripted failure", Provider: "scripted"}
	}
	return genai.GenerationResult{Success: true, Content: c.content, Provider: "scripted"}
}

func (c *scriptedGenClient) ProviderName() string { return "scripted" }

const chatEnvelope = `{"reply":"Paris, wonderful! Which spot?","currentStep":"city","nextStep":"spot","isComplete":false,` +
	`"collectedData":{"city":"Paris","spotName":null,"mainAction":null,"conceptId":null,"outfitStyle":null,"posePreference":null,"filmType":null,"cameraModel":null},` +
	`"rejectedItems":{"cities":[],"spots":[],"actions":[],"concepts":[],"outfits":[],"poses":[],"films":[],"cameras":[]},"suggestedOptions":[]}`

func newTestServer(llm genai.ClientInterface) (*Server, *flow.ChatAgent) {
	st := store.NewInMemoryStore()
	agent := flow.NewChatAgent(st, llm)
	return NewServer(agent, nil, nil), agent
}

func TestChatEndpoint(t *testing.T) {
	srv, _ := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()

	body := `{"message":"I want to visit Paris","sessionId":"s1","userId":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var reply models.ChatReply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.SessionID != "s1" || reply.CurrentStep != models.StepCity {
		t.Errorf("reply = %+v", reply)
	}
	if reply.CollectedData.City == nil || *reply.CollectedData.City != "Paris" {
		t.Errorf("City = %v, want Paris", reply.CollectedData.City)
	}
}

func TestChatEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"empty message", `{"message":"","sessionId":"s1"}`},
		{"empty session", `{"message":"hi","sessionId":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			var resp models.APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Status != string(models.APIStatusError) {
				t.Errorf("response status = %q, want error", resp.Status)
			}
		})
	}
}

func TestChatEndpointFailureStillReplies(t *testing.T) {
	// A generation failure must surface as a well-formed 200 reply, never an
	// HTTP error.
	srv, _ := newTestServer(&scriptedGenClient{fail: true})
	handler := srv.Handler()

	body := `{"message":"hello","sessionId":"s1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var reply models.ChatReply
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if reply.Reply == "" {
		t.Error("empty reply on failure path")
	}
	if reply.IsComplete {
		t.Error("IsComplete = true on failure path")
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, agent := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()
	agent.Chat(context.Background(), "I want to visit Paris", "s1", "")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/s1/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		SessionID  string                  `json:"sessionId"`
		History    []models.HistoryMessage `json:"history"`
		IsComplete bool                    `json:"isComplete"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "s1" || len(resp.History) != 2 {
		t.Errorf("response = %+v", resp)
	}
}

func TestHistoryEndpointUnknownSession(t *testing.T) {
	srv, _ := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/chat/nope/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with empty history", rec.Code)
	}
	var resp struct {
		History []models.HistoryMessage `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.History) != 0 {
		t.Errorf("history = %v, want empty", resp.History)
	}
}

func TestSessionStateEndpoint(t *testing.T) {
	srv, agent := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()
	agent.Chat(context.Background(), "Paris", "s1", "")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/s1/state", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var summary models.SessionSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.CurrentStep != models.StepCity || summary.MessageCount != 2 {
		t.Errorf("summary = %+v", summary)
	}

	// Unknown session is a 404, never fabricated state.
	req = httptest.NewRequest(http.MethodGet, "/api/chat/nope/state", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	st := store.NewInMemoryStore()
	agent := flow.NewChatAgent(st, &scriptedGenClient{content: chatEnvelope})
	recLLM := &scriptedGenClient{content: `{"destinations":[{"id":"d1","name":"Gordes","city":"Gordes","country":"France","description":"x"}]}`}
	srv := NewServer(agent, recommend.NewService(recLLM, nil), nil)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{"mood":"nostalgic"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.RecommendationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Destinations) != 1 || resp.Destinations[0].Name != "Gordes" {
		t.Errorf("destinations = %+v", resp.Destinations)
	}
}

func TestRecommendationsEndpointUnconfigured(t *testing.T) {
	srv, _ := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestGenerateEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()

	// No photo service configured.
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"destination":"Kyoto"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(&scriptedGenClient{content: chatEnvelope})
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != string(models.APIStatusOK) {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}
