package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	catalogdomain "github.com/QwabenaBoateng/Angiesplug/internal/catalog/domain"
	catalogservice "github.com/QwabenaBoateng/Angiesplug/internal/catalog/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/httputil"
	"github.com/QwabenaBoateng/Angiesplug/pkg/validator"
)

// SessionHandler exposes the transient session state: search query, filter
// params, and the product list derived from them.
type SessionHandler struct {
	products *catalogservice.ProductService
	logger   *slog.Logger
}

// NewSessionHandler creates a new session state HTTP handler.
func NewSessionHandler(products *catalogservice.ProductService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		products: products,
		logger:   logger,
	}
}

// SearchRequest is the JSON request body for setting the search query.
type SearchRequest struct {
	Query string `json:"query"`
}

// sessionState is the JSON shape of GET /api/v1/session.
type sessionState struct {
	SessionID   string                     `json:"session_id"`
	User        any                        `json:"user"`
	Loading     bool                       `json:"loading"`
	SearchQuery string                     `json:"search_query"`
	Filters     catalogdomain.FilterParams `json:"filters"`
	Products    []catalogdomain.Product    `json:"products"`
	Cart        any                        `json:"cart"`
}

// GetState handles GET /api/v1/session
func (h *SessionHandler) GetState(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sessionState{
		SessionID:   store.SessionID(),
		User:        store.User(),
		Loading:     store.Loading(),
		SearchQuery: store.SearchQuery(),
		Filters:     store.Filters(),
		Products:    store.Products(),
		Cart:        store.Snapshot(),
	}})
}

// SetFilters handles PUT /api/v1/session/filters. Changing the filters bumps
// the request generation and refreshes the product list; a refresh that loses
// the race to a newer change is discarded.
func (h *SessionHandler) SetFilters(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var params catalogdomain.FilterParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(params); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	store.SetFilters(params)

	h.refreshProducts(w, r)
}

// SetSearch handles PUT /api/v1/session/search
func (h *SessionHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	store.SetSearchQuery(req.Query)

	h.refreshProducts(w, r)
}

// refreshProducts recomputes the display list for the session's current
// params. The generation captured before the fetch guards against a slow
// fetch overwriting the result of a newer one.
func (h *SessionHandler) refreshProducts(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())

	generation := store.Generation()

	params := store.Filters()
	if q := store.SearchQuery(); q != "" {
		params.Search = q
	}

	store.SetLoading(true)
	products, err := h.products.StorefrontList(r.Context(), params)
	store.SetLoading(false)

	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	applied := store.SetProducts(generation, products)
	if !applied {
		h.logger.DebugContext(r.Context(), "dropped stale product fetch",
			slog.String("session_id", store.SessionID()),
			slog.Uint64("generation", generation),
		)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"products": store.Products(),
		"applied":  applied,
	}})
}
