package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
	"github.com/kiwari-pos/floor/internal/store"
)

// ReservationStore defines the store methods needed by reservation handlers.
// Satisfied by *store.Store; narrow interface for testability.
type ReservationStore interface {
	Reservations() []model.Reservation
	ReservationsByTable(tableID string) []model.Reservation
	Reservation(id string) (model.Reservation, bool)
	AddReservation(in store.NewReservation) (model.Reservation, error)
	UpdateReservation(id string, st enum.ReservationStatus) bool
	CancelReservation(id string) bool
}

// ReservationHandler handles reservation endpoints.
type ReservationHandler struct {
	store ReservationStore
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(store ReservationStore) *ReservationHandler {
	return &ReservationHandler{store: store}
}

// RegisterRoutes registers reservation endpoints on the given Chi router.
// Expected to be mounted at /reservations
func (h *ReservationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Cancel)
}

// --- Request / Response types ---

type createReservationRequest struct {
	TableID       string `json:"table_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Guests        int    `json:"guests"`
	Time          string `json:"time"`
	Notes         string `json:"notes"`
}

type updateReservationStatusRequest struct {
	Status string `json:"status"`
}

type reservationResponse struct {
	model.Reservation
	StatusStyle enum.StatusStyle `json:"status_style"`
}

// --- Handlers ---

// List handles GET /reservations, optionally filtered by ?table_id=.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	var list []model.Reservation
	if tableID := r.URL.Query().Get("table_id"); tableID != "" {
		list = h.store.ReservationsByTable(tableID)
	} else {
		list = h.store.Reservations()
	}

	resp := make([]reservationResponse, len(list))
	for i, res := range list {
		resp[i] = toReservationResponse(res)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /reservations.
func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var at time.Time
	if req.Time != "" {
		t, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			writeError(w, http.StatusBadRequest, "time must be RFC 3339")
			return
		}
		at = t
	}

	res, err := h.store.AddReservation(store.NewReservation{
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Guests:        req.Guests,
		Time:          at,
		Notes:         req.Notes,
	})
	if err != nil {
		writeServiceError(w, err, "add reservation")
		return
	}
	writeJSON(w, http.StatusCreated, toReservationResponse(res))
}

// Get handles GET /reservations/{id}.
func (h *ReservationHandler) Get(w http.ResponseWriter, r *http.Request) {
	res, ok := h.store.Reservation(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

// UpdateStatus handles PATCH /reservations/{id}/status.
func (h *ReservationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateReservationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st := enum.ReservationStatus(req.Status)
	if !st.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	h.transition(w, chi.URLParam(r, "id"), func(id string) bool {
		return h.store.UpdateReservation(id, st)
	})
}

// Cancel handles DELETE /reservations/{id}. The reservation is kept with
// status cancelled and its table is freed.
func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, chi.URLParam(r, "id"), h.store.CancelReservation)
}

// --- Helpers ---

func (h *ReservationHandler) transition(w http.ResponseWriter, id string, apply func(string) bool) {
	if _, ok := h.store.Reservation(id); !ok {
		writeError(w, http.StatusNotFound, "reservation not found")
		return
	}
	if !apply(id) {
		writeError(w, http.StatusConflict, store.ErrInvalidTransition.Error())
		return
	}
	res, _ := h.store.Reservation(id)
	writeJSON(w, http.StatusOK, toReservationResponse(res))
}

func toReservationResponse(r model.Reservation) reservationResponse {
	return reservationResponse{Reservation: r, StatusStyle: r.Status.Style()}
}
