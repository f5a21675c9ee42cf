// Package store provides storage backends for Trip Kit conversation state.
//
// It includes an in-memory store for development and tests, and SQLite,
// PostgreSQL, and Redis backed stores for durable session persistence.
package store

import "github.com/tripkit/tripkit/internal/models"

// Store defines the conversation state persistence contract.
//
// GetConversationState returns nil (not an error) when no state exists for
// the session. Implementations must be safe for concurrent use; turn-level
// read-modify-write atomicity per session is enforced by the flow layer.
type Store interface {
	GetConversationState(sessionID string) (*models.ConversationState, error)
	SaveConversationState(state models.ConversationState) error
	DeleteConversationState(sessionID string) error
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	DSN string
}

// Option configures store construction.
type Option func(*Opts)

// WithDSN sets the data source name (file path for SQLite, connection string
// for Postgres, address for Redis).
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}
