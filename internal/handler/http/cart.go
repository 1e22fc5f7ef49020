package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	catalogservice "github.com/QwabenaBoateng/Angiesplug/internal/catalog/service"
	sessiondomain "github.com/QwabenaBoateng/Angiesplug/internal/session/domain"
	sessionservice "github.com/QwabenaBoateng/Angiesplug/internal/session/service"
	"github.com/QwabenaBoateng/Angiesplug/pkg/httputil"
	"github.com/QwabenaBoateng/Angiesplug/pkg/validator"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	products *catalogservice.ProductService
	logger   *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(products *catalogservice.ProductService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		products: products,
		logger:   logger,
	}
}

// AddItemRequest is the JSON request body for adding a cart line. Price and
// name come from the catalog, never from the client.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// UpdateItemRequest is the JSON request body for setting a line quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store.Snapshot()})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	store.AddToCart(sessiondomain.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		ImageURL:  product.ImageURL,
		Category:  product.Category,
	})

	h.respondWithSnapshot(w, r, store)
}

// UpdateItem handles PUT /api/v1/cart/items/{productID}. A quantity of zero
// or less removes the line; an unknown product is a silent no-op.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	productID := chi.URLParam(r, "productID")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	store.UpdateQuantity(productID, req.Quantity)

	h.respondWithSnapshot(w, r, store)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}. Removing an
// absent line succeeds quietly.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	store.RemoveFromCart(chi.URLParam(r, "productID"))

	h.respondWithSnapshot(w, r, store)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := StoreFromContext(r.Context())
	store.ClearCart()

	h.respondWithSnapshot(w, r, store)
}

func (h *CartHandler) respondWithSnapshot(w http.ResponseWriter, r *http.Request, store *sessionservice.Store) {
	if err := store.Commit(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: store.Snapshot()})
}
