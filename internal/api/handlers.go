package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tripkit/tripkit/internal/models"
)

// chatHandler handles POST /api/chat
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("chatHandler invoked", "method", r.Method, "path", r.URL.Path)

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("chatHandler invalid JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("chatHandler validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	reply := s.chat.Chat(r.Context(), req.Message, req.SessionID, req.UserID)

	slog.Info("chatHandler turn served", "sessionID", req.SessionID,
		"currentStep", reply.CurrentStep, "isComplete", reply.IsComplete)
	writeJSONResponse(w, http.StatusOK, reply)
}

// historyHandler handles GET /api/chat/{sessionId}/history
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	slog.Debug("historyHandler invoked", "sessionID", sessionID)

	history, err := s.chat.GetConversationHistory(sessionID)
	if err != nil {
		slog.Error("historyHandler failed", "error", err, "sessionID", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load conversation history"))
		return
	}

	summary, err := s.chat.GetSessionState(sessionID)
	if err != nil {
		slog.Error("historyHandler state load failed", "error", err, "sessionID", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load session state"))
		return
	}

	resp := map[string]interface{}{
		"sessionId":  sessionID,
		"history":    history,
		"isComplete": false,
	}
	if summary != nil {
		resp["currentStep"] = summary.CurrentStep
		resp["collectedData"] = summary.CollectedData
		resp["isComplete"] = summary.IsComplete
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

// sessionStateHandler handles GET /api/chat/{sessionId}/state
func (s *Server) sessionStateHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionId")
	slog.Debug("sessionStateHandler invoked", "sessionID", sessionID)

	summary, err := s.chat.GetSessionState(sessionID)
	if err != nil {
		slog.Error("sessionStateHandler failed", "error", err, "sessionID", sessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to load session state"))
		return
	}
	if summary == nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found: "+sessionID))
		return
	}
	writeJSONResponse(w, http.StatusOK, summary)
}

// recommendationsHandler handles POST /api/recommendations
func (s *Server) recommendationsHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("recommendationsHandler invoked")

	if s.recommender == nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Recommendations not configured"))
		return
	}

	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("recommendationsHandler invalid JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	resp := s.recommender.Recommend(r.Context(), req)
	writeJSONResponse(w, http.StatusOK, resp)
}

// generateHandler handles POST /api/generate
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("generateHandler invoked")

	if s.photos == nil {
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Image generation not configured"))
		return
	}

	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("generateHandler invalid JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("generateHandler validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	resp := s.photos.Generate(r.Context(), req)
	status := http.StatusOK
	if resp.Status == "error" {
		status = http.StatusBadGateway
	}
	writeJSONResponse(w, status, resp)
}

// healthHandler handles GET /health
func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("ok", nil))
}
