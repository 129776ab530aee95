package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/model"
)

// CustomerStore defines the store methods needed by customer handlers.
// Satisfied by *store.Store; narrow interface for testability.
type CustomerStore interface {
	Customers() []model.Customer
}

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	store CustomerStore
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(store CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// RegisterRoutes registers customer endpoints on the given Chi router.
// Expected to be mounted at /customers
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// List handles GET /customers. ?search= matches name or phone.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))

	customers := h.store.Customers()
	if search == "" {
		writeJSON(w, http.StatusOK, customers)
		return
	}
	out := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), search) || strings.Contains(c.Phone, search) {
			out = append(out, c)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /customers/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, c := range h.store.Customers() {
		if c.ID == id {
			writeJSON(w, http.StatusOK, c)
			return
		}
	}
	writeError(w, http.StatusNotFound, "customer not found")
}
