package repository

import (
	"context"

	identitydomain "github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/session/domain"
)

// State is the durable portion of a session: the cart lines and the signed-in
// user. Everything else held by the session store (loading flag, search query,
// filter params, fetched products) is transient and is never persisted.
type State struct {
	Cart []domain.CartLine           `json:"cart"`
	User *identitydomain.SessionUser `json:"user"`
}

// Repository persists session state as a single named record per session.
type Repository interface {
	// Load returns the persisted state for a session, or nil when the
	// session has no persisted state yet.
	Load(ctx context.Context, sessionID string) (*State, error)

	// Save overwrites the persisted state for a session.
	Save(ctx context.Context, sessionID string, state *State) error

	// Delete removes the persisted state for a session.
	Delete(ctx context.Context, sessionID string) error
}
