package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
	"github.com/kiwari-pos/floor/internal/store"
)

// OrderStore defines the store methods needed by order handlers.
// Satisfied by *store.Store; narrow interface for testability.
type OrderStore interface {
	Orders() []model.Order
	OrdersByStatus(st enum.OrderStatus) []model.Order
	OrdersByTable(tableID string) []model.Order
	Order(id string) (model.Order, bool)
	OpenOrder(in store.NewOrder) (model.Order, error)
	AdvanceOrderStatus(id string, st enum.OrderStatus) (model.Order, error)
	AddItemToOrder(orderID string, in store.NewOrderItem) (model.Order, bool)
	RemoveOrderItem(orderItemID string) bool
	MenuItem(id string) (model.MenuItem, bool)
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	store OrderStore
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(store OrderStore) *OrderHandler {
	return &OrderHandler{store: store}
}

// RegisterRoutes registers order endpoints on the given Chi router.
// Expected to be mounted at /orders
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Post("/{id}/items", h.AddItem)
	r.Delete("/{id}/items/{itemID}", h.RemoveItem)
}

// --- Request / Response types ---

type createOrderRequest struct {
	TableID      string `json:"table_id"`
	Status       string `json:"status"`
	CustomerName string `json:"customer_name"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

type addOrderItemRequest struct {
	MenuItemID          string   `json:"menu_item_id"`
	Quantity            int      `json:"quantity"`
	Modifiers           []string `json:"modifiers"`
	SpecialInstructions string   `json:"special_instructions"`
}

type orderResponse struct {
	model.Order
	StatusStyle enum.StatusStyle `json:"status_style"`
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.TableID == "" {
		writeError(w, http.StatusBadRequest, "table_id is required")
		return
	}

	o, err := h.store.OpenOrder(store.NewOrder{
		TableID:      req.TableID,
		Status:       enum.OrderStatus(req.Status),
		CustomerName: req.CustomerName,
	})
	if err != nil {
		writeServiceError(w, err, "open order")
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

// List handles GET /orders with optional ?status= and ?table_id= filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var orders []model.Order
	switch {
	case q.Get("table_id") != "":
		orders = h.store.OrdersByTable(q.Get("table_id"))
	case q.Get("status") != "":
		st := enum.OrderStatus(q.Get("status"))
		if !st.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		orders = h.store.OrdersByStatus(st)
	default:
		orders = h.store.Orders()
	}

	if s := q.Get("status"); s != "" && q.Get("table_id") != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if string(o.Status) == s {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, ok := h.store.Order(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// UpdateStatus handles PATCH /orders/{id}/status. Only transitions defined
// for the current status are accepted.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st := enum.OrderStatus(req.Status)
	if !st.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	o, err := h.store.AdvanceOrderStatus(chi.URLParam(r, "id"), st)
	if err != nil {
		writeServiceError(w, err, "update order status")
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// AddItem handles POST /orders/{id}/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addOrderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MenuItemID == "" {
		writeError(w, http.StatusBadRequest, "menu_item_id is required")
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be > 0")
		return
	}

	orderID := chi.URLParam(r, "id")
	current, ok := h.store.Order(orderID)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if current.Status.Terminal() {
		writeError(w, http.StatusConflict, "order is closed")
		return
	}

	item, ok := h.store.MenuItem(req.MenuItemID)
	if !ok {
		writeError(w, http.StatusBadRequest, "menu item not found")
		return
	}
	if !item.Available {
		writeError(w, http.StatusConflict, "menu item is not available")
		return
	}

	o, ok := h.store.AddItemToOrder(orderID, store.NewOrderItem{
		MenuItem:            item,
		Quantity:            req.Quantity,
		Modifiers:           req.Modifiers,
		SpecialInstructions: req.SpecialInstructions,
	})
	if !ok {
		// Closed or removed between the checks above and the write.
		writeError(w, http.StatusConflict, "order is closed")
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

// RemoveItem handles DELETE /orders/{id}/items/{itemID}.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	itemID := chi.URLParam(r, "itemID")

	o, ok := h.store.Order(orderID)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if !hasItem(o, itemID) {
		writeError(w, http.StatusNotFound, "order item not found")
		return
	}
	if !h.store.RemoveOrderItem(itemID) {
		writeError(w, http.StatusConflict, "order is closed")
		return
	}

	o, _ = h.store.Order(orderID)
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// --- Helpers ---

func hasItem(o model.Order, itemID string) bool {
	for _, it := range o.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}

func toOrderResponse(o model.Order) orderResponse {
	return orderResponse{Order: o, StatusStyle: o.Status.Style()}
}
