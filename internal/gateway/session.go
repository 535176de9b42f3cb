// internal/gateway/session.go
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dining-concierge/internal/common/database"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionStore persists per-session slot state in Redis. A session that
// never finishes simply expires.
type SessionStore struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewSessionStore(rc *database.RedisClient, ttl time.Duration, log logger.Logger) *SessionStore {
	return &SessionStore{
		redis:  rc,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "session-store"}),
	}
}

// Load returns the slot set for a session, empty when none is stored.
func (s *SessionStore) Load(ctx context.Context, sessionID string) (models.SlotSet, error) {
	raw, err := s.redis.Get(ctx, sessionKeyPrefix+sessionID)
	if err == redis.Nil {
		return models.SlotSet{}, nil
	}
	if err != nil {
		return models.SlotSet{}, fmt.Errorf("session load: %w", err)
	}

	var slots models.SlotSet
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		// Stale or corrupt state is worth less than a fresh conversation.
		s.logger.Warn("discarding unparseable session state", map[string]interface{}{
			"sessionId": sessionID,
		})
		return models.SlotSet{}, nil
	}
	return slots, nil
}

// Save writes the slot set back with a refreshed TTL.
func (s *SessionStore) Save(ctx context.Context, sessionID string, slots models.SlotSet) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKeyPrefix+sessionID, string(raw), s.ttl); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Clear drops a finished session.
func (s *SessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKeyPrefix+sessionID)
}
