package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tripkit/tripkit/internal/models"
)

// InMemoryStore is a mutex-guarded map store for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{states: make(map[string][]byte)}
}

// GetConversationState returns the stored state for a session, or nil if none exists.
func (s *InMemoryStore) GetConversationState(sessionID string) (*models.ConversationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.states[sessionID]
	if !ok {
		return nil, nil
	}
	var state models.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to decode stored state for %s: %w", sessionID, err)
	}
	return &state, nil
}

// SaveConversationState stores or replaces the state for a session.
// State is serialized on write so later mutations of the caller's copy
// cannot leak into the store.
func (s *InMemoryStore) SaveConversationState(state models.ConversationState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state for %s: %w", state.SessionID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.SessionID] = raw
	return nil
}

// DeleteConversationState removes the state for a session.
func (s *InMemoryStore) DeleteConversationState(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sessionID)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error { return nil }
