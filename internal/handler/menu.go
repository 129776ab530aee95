package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/middleware"
	"github.com/kiwari-pos/floor/internal/model"
)

// MenuStore defines the store methods needed by menu handlers.
// Satisfied by *store.Store; narrow interface for testability.
type MenuStore interface {
	MenuItems() []model.MenuItem
	MenuItem(id string) (model.MenuItem, bool)
	AddMenuItem(item model.MenuItem) model.MenuItem
	UpdateMenuItem(item model.MenuItem) bool
	DeleteMenuItem(id string) bool
	Categories() []model.Category
	AddCategory(c model.Category) model.Category
}

// MenuHandler handles menu item and category endpoints.
type MenuHandler struct {
	store MenuStore
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(store MenuStore) *MenuHandler {
	return &MenuHandler{store: store}
}

// RegisterRoutes registers menu item endpoints on the given Chi router.
// Reads are open to all staff; writes need a manager.
// Expected to be mounted at /menu
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(enum.UserRoleManager))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// RegisterCategoryRoutes registers category endpoints.
// Expected to be mounted at /categories
func (h *MenuHandler) RegisterCategoryRoutes(r chi.Router) {
	r.Get("/", h.ListCategories)
	r.With(middleware.RequireRole(enum.UserRoleManager)).Post("/", h.CreateCategory)
}

// --- Request / Response types ---

type menuItemRequest struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Price           string   `json:"price"`
	Image           string   `json:"image"`
	Description     string   `json:"description"`
	Ingredients     []string `json:"ingredients"`
	PreparationTime int      `json:"preparation_time"`
	Available       *bool    `json:"available"`
}

type createCategoryRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// --- Handlers ---

// List handles GET /menu with optional ?category=, ?available= and ?q= filters.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	onlyAvailable := q.Get("available") == "true"
	search := strings.ToLower(strings.TrimSpace(q.Get("q")))

	items := h.store.MenuItems()
	out := make([]model.MenuItem, 0, len(items))
	for _, it := range items {
		if category != "" && category != "all" && it.Category != category {
			continue
		}
		if onlyAvailable && !it.Available {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(it.Name), search) {
			continue
		}
		out = append(out, it)
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /menu/{id}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, ok := h.store.MenuItem(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /menu.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	item, ok := decodeMenuItem(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, h.store.AddMenuItem(item))
}

// Update handles PUT /menu/{id}. The body replaces the whole item.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.MenuItem(id); !ok {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	item, ok := decodeMenuItem(w, r)
	if !ok {
		return
	}
	item.ID = id
	if !h.store.UpdateMenuItem(item) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /menu/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !h.store.DeleteMenuItem(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /categories.
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Categories())
}

// CreateCategory handles POST /categories.
func (h *MenuHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	c := h.store.AddCategory(model.Category{ID: req.ID, Name: req.Name, Icon: req.Icon})
	writeJSON(w, http.StatusCreated, c)
}

// --- Helpers ---

// decodeMenuItem reads and validates a menu item body. On failure it writes
// the error response and returns false.
func decodeMenuItem(w http.ResponseWriter, r *http.Request) (model.MenuItem, bool) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return model.MenuItem{}, false
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return model.MenuItem{}, false
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return model.MenuItem{}, false
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price format")
		return model.MenuItem{}, false
	}
	if price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must be >= 0")
		return model.MenuItem{}, false
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return model.MenuItem{
		Name:            req.Name,
		Category:        req.Category,
		Subcategory:     req.Subcategory,
		Price:           price,
		Image:           req.Image,
		Description:     req.Description,
		Ingredients:     req.Ingredients,
		PreparationTime: req.PreparationTime,
		Available:       available,
	}, true
}
