package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	catalogdomain "github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	identitydomain "github.com/QwabenaBoateng/Angiesplug/internal/identity/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/session/domain"
	"github.com/QwabenaBoateng/Angiesplug/internal/session/repository"
)

// CartEventPublisher publishes cart lifecycle events.
type CartEventPublisher interface {
	PublishCartUpdated(ctx context.Context, sessionID string, snapshot domain.Snapshot) error
	PublishCartCleared(ctx context.Context, sessionID string) error
}

// Store holds the full client-visible state for one session: the cart, the
// signed-in user, the loading flag, the search query, the filter params, and
// the most recently fetched product list. Only the cart and the user are
// durable; everything else lives for the lifetime of the session in memory.
//
// Mutations accumulate in memory and reach the repository only through
// Commit. All methods are safe for concurrent use.
type Store struct {
	sessionID string
	repo      repository.Repository
	events    CartEventPublisher
	logger    *slog.Logger

	mu          sync.Mutex
	cart        []domain.CartLine
	user        *identitydomain.SessionUser
	loading     bool
	searchQuery string
	filters     catalogdomain.FilterParams
	products    []catalogdomain.Product
	generation  uint64
	dirty       bool
	cleared     bool
}

// NewStore creates a store for the given session. Call Load to hydrate it
// from the repository before first use.
func NewStore(sessionID string, repo repository.Repository, events CartEventPublisher, logger *slog.Logger) *Store {
	return &Store{
		sessionID: sessionID,
		repo:      repo,
		events:    events,
		logger:    logger,
	}
}

// SessionID returns the session this store belongs to.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Load hydrates the cart and user from the repository. A session with no
// persisted state loads as empty.
func (s *Store) Load(ctx context.Context) error {
	state, err := s.repo.Load(ctx, s.sessionID)
	if err != nil {
		return fmt.Errorf("load session state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if state != nil {
		s.cart = state.Cart
		s.user = state.User
	}
	s.dirty = false
	s.cleared = false

	return nil
}

// AddToCart adds a line to the cart, or increases the quantity of the
// existing line when the product is already present. Lines merge on product
// ID alone: a second add of the same product with a different size or color
// still folds into the first line.
func (s *Store) AddToCart(line domain.CartLine) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == line.ProductID {
			s.cart[i].Quantity += line.Quantity
			s.dirty = true
			return
		}
	}

	s.cart = append(s.cart, line)
	s.dirty = true
}

// RemoveFromCart deletes the line for a product. Removing a product that is
// not in the cart is a no-op.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.dirty = true
			return
		}
	}
}

// UpdateQuantity sets the quantity for a product's line. A quantity of zero
// or less removes the line. Updating a product that is not in the cart is a
// no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity = quantity
			s.dirty = true
			return
		}
	}
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return
	}

	s.cart = nil
	s.dirty = true
	s.cleared = true
}

// Cart returns a copy of the cart lines.
func (s *Store) Cart() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// Snapshot returns the cart with derived totals.
func (s *Store) Snapshot() domain.Snapshot {
	return domain.BuildSnapshot(s.Cart())
}

// SetUser records the signed-in user. Passing nil signs the session out.
func (s *Store) SetUser(user *identitydomain.SessionUser) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = user
	s.dirty = true
}

// User returns the signed-in user, or nil.
func (s *Store) User() *identitydomain.SessionUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetLoading flips the transient loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading returns the transient loading flag.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetSearchQuery replaces the search query and starts a new fetch generation,
// so product results from fetches issued before this change are dropped.
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.searchQuery = query
	s.generation++
}

// SearchQuery returns the current search query.
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// SetFilters replaces the filter params wholesale and starts a new fetch
// generation.
func (s *Store) SetFilters(params catalogdomain.FilterParams) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = params
	s.generation++
}

// Filters returns the current filter params.
func (s *Store) Filters() catalogdomain.FilterParams {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Generation returns the current fetch generation. Capture it before starting
// a product fetch and pass it to SetProducts with the results.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// SetProducts installs fetched products if the generation still matches.
// Results from a fetch that was outpaced by a newer query or filter change
// are discarded, and SetProducts reports false.
func (s *Store) SetProducts(generation uint64, products []catalogdomain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}

	s.products = products
	return true
}

// Products returns the most recently installed product list.
func (s *Store) Products() []catalogdomain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products
}

// Dirty reports whether there are uncommitted changes.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Commit persists the durable state, exactly the cart and the user, as one
// record, then publishes the matching cart event. A store with no uncommitted
// changes commits as a no-op.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}

	state := &repository.State{
		Cart: make([]domain.CartLine, len(s.cart)),
		User: s.user,
	}
	copy(state.Cart, s.cart)
	wasCleared := s.cleared
	s.mu.Unlock()

	if err := s.repo.Save(ctx, s.sessionID, state); err != nil {
		return fmt.Errorf("commit session state: %w", err)
	}

	s.mu.Lock()
	s.dirty = false
	s.cleared = false
	s.mu.Unlock()

	if wasCleared {
		if err := s.events.PublishCartCleared(ctx, s.sessionID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
				slog.String("session_id", s.sessionID),
				slog.String("error", err.Error()),
			)
		}
	} else {
		if err := s.events.PublishCartUpdated(ctx, s.sessionID, domain.BuildSnapshot(state.Cart)); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
				slog.String("session_id", s.sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
