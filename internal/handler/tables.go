package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
)

// TableStore defines the store methods needed by table handlers.
// Satisfied by *store.Store; narrow interface for testability.
type TableStore interface {
	Tables() []model.Table
	TablesByStatus(st enum.TableStatus) []model.Table
	Table(id string) (model.Table, bool)
	UpdateTableStatus(id string, st enum.TableStatus) bool
	OrdersByTable(tableID string) []model.Order
	ReservationsByTable(tableID string) []model.Reservation
}

// TableHandler handles table endpoints.
type TableHandler struct {
	store TableStore
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(store TableStore) *TableHandler {
	return &TableHandler{store: store}
}

// RegisterRoutes registers table endpoints on the given Chi router.
// Expected to be mounted at /tables
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type tableResponse struct {
	model.Table
	StatusStyle enum.StatusStyle `json:"status_style"`
}

type tableDetailResponse struct {
	tableResponse
	Orders       []orderResponse       `json:"orders"`
	Reservations []reservationResponse `json:"reservations"`
}

type updateTableStatusRequest struct {
	Status string `json:"status"`
}

// --- Handlers ---

// List handles GET /tables, optionally filtered by ?status=.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	var tables []model.Table
	if s := r.URL.Query().Get("status"); s != "" {
		st := enum.TableStatus(s)
		if !st.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		tables = h.store.TablesByStatus(st)
	} else {
		tables = h.store.Tables()
	}

	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /tables/{id}.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := h.store.Table(id)
	if !ok {
		writeError(w, http.StatusNotFound, "table not found")
		return
	}

	orders := h.store.OrdersByTable(id)
	reservations := h.store.ReservationsByTable(id)
	resp := tableDetailResponse{
		tableResponse: toTableResponse(t),
		Orders:        make([]orderResponse, len(orders)),
		Reservations:  make([]reservationResponse, len(reservations)),
	}
	for i, o := range orders {
		resp.Orders[i] = toOrderResponse(o)
	}
	for i, res := range reservations {
		resp.Reservations[i] = toReservationResponse(res)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateStatus handles PATCH /tables/{id}/status.
func (h *TableHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateTableStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st := enum.TableStatus(req.Status)
	if !st.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	id := chi.URLParam(r, "id")
	if !h.store.UpdateTableStatus(id, st) {
		writeError(w, http.StatusNotFound, "table not found")
		return
	}

	t, _ := h.store.Table(id)
	writeJSON(w, http.StatusOK, toTableResponse(t))
}

func toTableResponse(t model.Table) tableResponse {
	return tableResponse{Table: t, StatusStyle: t.Status.Style()}
}
