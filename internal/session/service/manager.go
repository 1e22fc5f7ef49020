package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/QwabenaBoateng/Angiesplug/internal/session/repository"
)

// Manager owns the live session stores. It is created once at startup,
// handed to the HTTP layer explicitly, and flushed during shutdown; there is
// no package-level instance.
type Manager struct {
	repo   repository.Repository
	events CartEventPublisher
	logger *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a session manager backed by the given repository.
func NewManager(repo repository.Repository, events CartEventPublisher, logger *slog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		events: events,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// NewSessionID mints an opaque session identifier.
func (m *Manager) NewSessionID() string {
	return uuid.New().String()
}

// Get returns the store for a session, hydrating it from the repository on
// first access.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Store, error) {
	m.mu.Lock()
	store, ok := m.stores[sessionID]
	if !ok {
		store = NewStore(sessionID, m.repo, m.events, m.logger)
		m.stores[sessionID] = store
	}
	m.mu.Unlock()

	if !ok {
		if err := store.Load(ctx); err != nil {
			m.mu.Lock()
			delete(m.stores, sessionID)
			m.mu.Unlock()
			return nil, fmt.Errorf("hydrate session %s: %w", sessionID, err)
		}
	}

	return store, nil
}

// Evict commits a session's pending changes and drops it from memory.
func (m *Manager) Evict(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	store, ok := m.stores[sessionID]
	delete(m.stores, sessionID)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return store.Commit(ctx)
}

// Flush commits every live session. Called during shutdown so no in-memory
// cart changes are lost.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	var errs []error
	for _, store := range stores {
		if err := store.Commit(ctx); err != nil {
			m.logger.ErrorContext(ctx, "failed to flush session",
				slog.String("session_id", store.SessionID()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Len reports how many sessions are live in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
