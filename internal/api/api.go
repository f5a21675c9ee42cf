package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tripkit/tripkit/internal/flow"
	"github.com/tripkit/tripkit/internal/photo"
	"github.com/tripkit/tripkit/internal/recommend"
)

// Server timeouts
const (
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 120 * time.Second
	DefaultIdleTimeout  = 60 * time.Second
)

// Server exposes the Trip Kit HTTP endpoints. The recommendation and photo
// services are optional; their endpoints answer 503 when not configured.
type Server struct {
	chat        *flow.ChatAgent
	recommender *recommend.Service
	photos      *photo.Service
}

// NewServer creates a Server over the given services. recommender and photos
// may be nil.
func NewServer(chat *flow.ChatAgent, recommender *recommend.Service, photos *photo.Service) *Server {
	return &Server{chat: chat, recommender: recommender, photos: photos}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.chatHandler)
	mux.HandleFunc("GET /api/chat/{sessionId}/history", s.historyHandler)
	mux.HandleFunc("GET /api/chat/{sessionId}/state", s.sessionStateHandler)
	mux.HandleFunc("POST /api/recommendations", s.recommendationsHandler)
	mux.HandleFunc("POST /api/generate", s.generateHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	return mux
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server.Run: listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("Server.Run: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
