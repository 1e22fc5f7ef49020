package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/QwabenaBoateng/Angiesplug/internal/session/repository"
)

const keyPrefix = "session:"

// SessionRepository implements repository.Repository using Redis. Each session
// is stored as one JSON record holding exactly the cart and the user.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a new Redis-backed session repository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

// Load retrieves the persisted state for a session. A session that has never
// been committed yields (nil, nil), not an error.
func (r *SessionRepository) Load(ctx context.Context, sessionID string) (*repository.State, error) {
	key := keyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var state repository.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal session state: %w", err)
	}

	return &state, nil
}

// Save persists the state for a session with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, sessionID string, state *repository.State) error {
	key := keyPrefix + sessionID

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal session state: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}

	return nil
}

// Delete removes the persisted state for a session.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := keyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}

	return nil
}
