package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/service"
)

// PaymentProcessor quotes and settles bills.
// Satisfied by *service.PaymentService; narrow interface for testability.
type PaymentProcessor interface {
	Quote(ctx context.Context, orderID string, tipPercent decimal.Decimal) (service.Quote, error)
	Process(ctx context.Context, req service.PaymentRequest) (*service.Receipt, error)
}

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	payments PaymentProcessor
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments PaymentProcessor) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// RegisterRoutes registers payment endpoints on the given Chi router.
// Expected to be mounted at /orders/{id}/payments
func (h *PaymentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/quote", h.Quote)
	r.Post("/", h.Pay)
}

// --- Request / Response types ---

type payRequest struct {
	PaymentMethod  string `json:"payment_method"`
	TipPercent     string `json:"tip_percent"`
	AmountReceived string `json:"amount_received"`
}

// --- Handlers ---

// Quote handles GET /orders/{id}/payments/quote?tip_percent=.
func (h *PaymentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	tip, err := parseOptionalDecimal(r.URL.Query().Get("tip_percent"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tip_percent")
		return
	}

	q, err := h.payments.Quote(r.Context(), chi.URLParam(r, "id"), tip)
	if err != nil {
		writeServiceError(w, err, "quote order")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// Pay handles POST /orders/{id}/payments.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tip, err := parseOptionalDecimal(req.TipPercent)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tip_percent")
		return
	}
	received, err := parseOptionalDecimal(req.AmountReceived)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount_received")
		return
	}

	receipt, err := h.payments.Process(r.Context(), service.PaymentRequest{
		OrderID:        chi.URLParam(r, "id"),
		Method:         enum.PaymentMethod(req.PaymentMethod),
		TipPercent:     tip,
		AmountReceived: received,
	})
	if err != nil {
		writeServiceError(w, err, "process payment")
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func parseOptionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
