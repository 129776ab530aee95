package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
	"github.com/kiwari-pos/floor/internal/store"
)

// DashboardStore defines the store methods needed by dashboard handlers.
// Satisfied by *store.Store; narrow interface for testability.
type DashboardStore interface {
	Summary() store.Summary
	User() model.UserProfile
}

// DashboardHandler serves the floor overview.
type DashboardHandler struct {
	store DashboardStore
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(store DashboardStore) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// RegisterRoutes registers dashboard endpoints on the given Chi router.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/profile", h.Profile)
	r.Get("/statuses", h.Statuses)
}

type statusEntry struct {
	Status string           `json:"status"`
	Style  enum.StatusStyle `json:"style"`
}

type statusesResponse struct {
	Orders       []statusEntry `json:"orders"`
	Tables       []statusEntry `json:"tables"`
	Reservations []statusEntry `json:"reservations"`
}

// Summary handles GET /summary.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Summary())
}

// Profile handles GET /profile, the signed-in venue profile.
func (h *DashboardHandler) Profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.User())
}

// Statuses handles GET /statuses: every status with its display style.
func (h *DashboardHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	var resp statusesResponse
	for _, s := range enum.OrderStatuses {
		resp.Orders = append(resp.Orders, statusEntry{Status: string(s), Style: s.Style()})
	}
	for _, s := range enum.TableStatuses {
		resp.Tables = append(resp.Tables, statusEntry{Status: string(s), Style: s.Style()})
	}
	for _, s := range enum.ReservationStatuses {
		resp.Reservations = append(resp.Reservations, statusEntry{Status: string(s), Style: s.Style()})
	}
	writeJSON(w, http.StatusOK, resp)
}
