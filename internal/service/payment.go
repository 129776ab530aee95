package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
	"github.com/kiwari-pos/floor/internal/store"
)

var hundred = decimal.NewFromInt(100)

// Errors returned by the payment service.
var (
	ErrInvalidPaymentMethod = errors.New("invalid payment_method")
	ErrInvalidTip           = errors.New("tip_percent must be between 0 and 100")
	ErrInsufficientAmount   = errors.New("amount_received must be >= total")
)

// PaymentStore defines the store methods needed to take payments.
// Satisfied by *store.Store; narrow interface for testability.
type PaymentStore interface {
	Order(id string) (model.Order, bool)
	SettleOrder(id string, method enum.PaymentMethod, billed decimal.Decimal) (model.Order, error)
}

// PaymentRequest is the validated input for settling an order.
type PaymentRequest struct {
	OrderID        string
	Method         enum.PaymentMethod
	TipPercent     decimal.Decimal
	AmountReceived decimal.Decimal // cash only; zero means exact change
}

// Quote is the bill breakdown shown before payment.
type Quote struct {
	OrderID  string          `json:"order_id"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Tip      decimal.Decimal `json:"tip"`
	Total    decimal.Decimal `json:"total"`
}

// Receipt is the result of a successful payment.
type Receipt struct {
	TransactionID  string             `json:"transaction_id"`
	Method         enum.PaymentMethod `json:"payment_method"`
	Quote          Quote              `json:"quote"`
	AmountReceived decimal.Decimal    `json:"amount_received"`
	Change         decimal.Decimal    `json:"change"`
	PaidAt         time.Time          `json:"paid_at"`
	Order          model.Order        `json:"order"`
}

// PaymentService computes bills and settles orders.
type PaymentService struct {
	store   PaymentStore
	taxRate decimal.Decimal
	now     func() time.Time
}

// NewPaymentService creates a PaymentService charging taxRate on every
// subtotal. A zero rate bills no tax.
func NewPaymentService(store PaymentStore, taxRate decimal.Decimal) *PaymentService {
	return &PaymentService{store: store, taxRate: taxRate, now: time.Now}
}

// Quote returns the bill for an order without settling it.
func (s *PaymentService) Quote(ctx context.Context, orderID string, tipPercent decimal.Decimal) (Quote, error) {
	if err := ctx.Err(); err != nil {
		return Quote{}, err
	}
	if err := validateTip(tipPercent); err != nil {
		return Quote{}, err
	}
	order, ok := s.store.Order(orderID)
	if !ok {
		return Quote{}, fmt.Errorf("%w: %s", store.ErrOrderNotFound, orderID)
	}
	return s.quote(order, tipPercent), nil
}

// Process settles an order and returns its receipt.
func (s *PaymentService) Process(ctx context.Context, req PaymentRequest) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if err := validateTip(req.TipPercent); err != nil {
		return nil, err
	}

	order, ok := s.store.Order(req.OrderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrOrderNotFound, req.OrderID)
	}
	q := s.quote(order, req.TipPercent)

	received := q.Total
	change := decimal.Zero
	if req.Method == enum.PaymentMethodCash && !req.AmountReceived.IsZero() {
		if req.AmountReceived.LessThan(q.Total) {
			return nil, ErrInsufficientAmount
		}
		received = req.AmountReceived
		change = received.Sub(q.Total)
	}

	settled, err := s.store.SettleOrder(req.OrderID, req.Method, order.Total)
	if err != nil {
		return nil, fmt.Errorf("settle order: %w", err)
	}

	return &Receipt{
		TransactionID:  newTransactionID(),
		Method:         req.Method,
		Quote:          q,
		AmountReceived: received,
		Change:         change,
		PaidAt:         s.now(),
		Order:          settled,
	}, nil
}

func (s *PaymentService) quote(order model.Order, tipPercent decimal.Decimal) Quote {
	subtotal := order.Total
	tax := subtotal.Mul(s.taxRate).Round(2)
	tip := subtotal.Mul(tipPercent).Div(hundred).Round(2)
	return Quote{
		OrderID:  order.ID,
		Subtotal: subtotal.Round(2),
		Tax:      tax,
		Tip:      tip,
		Total:    subtotal.Add(tax).Add(tip).Round(2),
	}
}

func validateTip(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return ErrInvalidTip
	}
	return nil
}

// newTransactionID returns an id of the form TXN-1A2B3C4D.
func newTransactionID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN-" + strings.ToUpper(hex[:8])
}
