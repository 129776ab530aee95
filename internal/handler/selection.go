package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/store"
)

// SelectionStore defines the store methods needed by selection handlers.
// Satisfied by *store.Store; narrow interface for testability.
type SelectionStore interface {
	Selection() store.Selection
	SelectOrder(id string) bool
	SelectTable(id string) bool
	SelectCategory(id string) bool
}

// SelectionHandler exposes the shared detail-view selection.
type SelectionHandler struct {
	store SelectionStore
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(store SelectionStore) *SelectionHandler {
	return &SelectionHandler{store: store}
}

// RegisterRoutes registers selection endpoints on the given Chi router.
// Expected to be mounted at /selection
func (h *SelectionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Put("/order", h.put(h.store.SelectOrder, "order not found"))
	r.Put("/table", h.put(h.store.SelectTable, "table not found"))
	r.Put("/category", h.put(h.store.SelectCategory, "category not found"))
}

type selectRequest struct {
	ID string `json:"id"`
}

type selectionResponse struct {
	OrderID    string `json:"order_id"`
	TableID    string `json:"table_id"`
	CategoryID string `json:"category_id"`
}

// Get handles GET /selection.
func (h *SelectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSelectionResponse(h.store.Selection()))
}

// put builds a PUT handler for one selection slot. An empty id clears it.
func (h *SelectionHandler) put(sel func(string) bool, notFound string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !sel(req.ID) {
			writeError(w, http.StatusNotFound, notFound)
			return
		}
		writeJSON(w, http.StatusOK, toSelectionResponse(h.store.Selection()))
	}
}

func toSelectionResponse(s store.Selection) selectionResponse {
	return selectionResponse{OrderID: s.OrderID, TableID: s.TableID, CategoryID: s.CategoryID}
}
