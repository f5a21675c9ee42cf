package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripkit/tripkit/internal/models"
)

// DefaultSessionTTL is how long an idle session is retained in Redis
// before it expires. Zero disables expiry.
const DefaultSessionTTL = 24 * time.Hour

const redisKeyPrefix = "conversation:"

// RedisStore persists conversation state in Redis as JSON blobs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a new Redis store. The DSN option holds a Redis
// URL (redis://[:password@]host:port/db) or a plain host:port address.
func NewRedisStore(opts ...Option) (*RedisStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("RedisStore.NewRedisStore: creating Redis store", "DSN_set", cfg.DSN != "")

	addr := cfg.DSN
	if addr == "" {
		addr = "localhost:6379"
	}

	var client *redis.Client
	if redisOpts, err := redis.ParseURL(addr); err == nil {
		client = redis.NewClient(redisOpts)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Redis ping failed", "error", err, "addr", addr)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	slog.Info("RedisStore connected", "addr", addr)
	return &RedisStore{client: client, ttl: DefaultSessionTTL}, nil
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// GetConversationState retrieves conversation state for a session.
func (s *RedisStore) GetConversationState(sessionID string) (*models.ConversationState, error) {
	ctx := context.Background()
	stateJSON, err := s.client.Get(ctx, redisKey(sessionID)).Result()
	if err == redis.Nil {
		slog.Debug("RedisStore GetConversationState not found", "sessionID", sessionID)
		return nil, nil
	}
	if err != nil {
		slog.Error("RedisStore GetConversationState failed", "error", err, "sessionID", sessionID)
		return nil, fmt.Errorf("failed to query conversation state: %w", err)
	}

	var state models.ConversationState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		slog.Error("RedisStore GetConversationState JSON unmarshal failed", "error", err, "sessionID", sessionID)
		return nil, fmt.Errorf("failed to decode conversation state: %w", err)
	}

	slog.Debug("RedisStore GetConversationState found", "sessionID", sessionID, "step", state.CurrentStep)
	return &state, nil
}

// SaveConversationState stores or updates conversation state for a session,
// refreshing the session TTL.
func (s *RedisStore) SaveConversationState(state models.ConversationState) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		slog.Error("RedisStore SaveConversationState JSON marshal failed", "error", err, "sessionID", state.SessionID)
		return err
	}

	ctx := context.Background()
	if err := s.client.Set(ctx, redisKey(state.SessionID), stateJSON, s.ttl).Err(); err != nil {
		slog.Error("RedisStore SaveConversationState failed", "error", err, "sessionID", state.SessionID)
		return fmt.Errorf("failed to save conversation state for %s: %w", state.SessionID, err)
	}
	slog.Debug("RedisStore SaveConversationState succeeded", "sessionID", state.SessionID, "step", state.CurrentStep)
	return nil
}

// DeleteConversationState removes conversation state for a session.
func (s *RedisStore) DeleteConversationState(sessionID string) error {
	ctx := context.Background()
	if err := s.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		slog.Error("RedisStore DeleteConversationState failed", "error", err, "sessionID", sessionID)
		return err
	}
	slog.Debug("RedisStore DeleteConversationState succeeded", "sessionID", sessionID)
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	slog.Debug("Closing Redis client")
	return s.client.Close()
}
