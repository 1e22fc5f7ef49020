package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/QwabenaBoateng/Angiesplug/internal/session/repository"
)

// SessionRepository is an in-memory implementation of repository.Repository,
// used in tests and local development without Redis. State is stored as JSON
// so load/save round-trips behave like the Redis implementation.
type SessionRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewSessionRepository creates an empty in-memory session repository.
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		data: make(map[string][]byte),
	}
}

// Load returns the stored state for a session, or nil when absent.
func (r *SessionRepository) Load(_ context.Context, sessionID string) (*repository.State, error) {
	r.mu.RLock()
	raw, ok := r.data[sessionID]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	var state repository.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save stores the state for a session.
func (r *SessionRepository) Save(_ context.Context, sessionID string, state *repository.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.data[sessionID] = raw
	r.mu.Unlock()
	return nil
}

// Delete removes the stored state for a session.
func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.data, sessionID)
	r.mu.Unlock()
	return nil
}

// Len reports how many sessions are stored.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
