// Package store is the single source of truth for the restaurant floor:
// tables, order tickets, reservations and the menu reference data.
//
// Every mutation, including its cross-entity side effects, runs inside one
// critical section, so a reader never sees a reservation marked arrived while
// its table is still reserved. Lookups by an unknown id are silent no-ops and
// report false.
package store

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kiwari-pos/floor/internal/model"
)

// Errors returned by the store.
var (
	ErrTableAlreadyReserved = errors.New("table already has an active reservation")
	ErrTableNotFound        = errors.New("table not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidInitialStatus = errors.New("invalid initial order status")
	ErrInvalidPartySize     = errors.New("guests must be >= 0")
	ErrOrderNotPayable      = errors.New("order cannot be paid")
	ErrOrderChanged         = errors.New("order changed since it was billed")
)

// Notification describes a committed mutation. It is delivered after the
// store lock has been released.
type Notification struct {
	Kind     string    `json:"kind"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entity_id"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Notifier receives notifications. Implementations must not block; a panic
// inside Notify is recovered and logged.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Option configures a Store.
type Option func(*Store)

// WithNotifier sets the notification sink.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Selection is the set of entities a front end currently shows in detail.
type Selection struct {
	OrderID    string `json:"order_id,omitempty"`
	TableID    string `json:"table_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// Store owns all mutable floor state.
type Store struct {
	mu sync.RWMutex

	user         model.UserProfile
	tables       []model.Table
	orders       []model.Order
	reservations []model.Reservation
	menuItems    []model.MenuItem
	categories   []model.Category
	customers    []model.Customer
	selection    Selection

	reservationSeq int
	orderSeq       int

	notifier Notifier
	now      func() time.Time
}

// New builds a store from seed data. The seed is copied; later changes to it
// do not affect the store.
func New(seed Seed, opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.user = seed.User
	s.tables = append([]model.Table(nil), seed.Tables...)
	s.orders = make([]model.Order, len(seed.Orders))
	for i, o := range seed.Orders {
		s.orders[i] = o.Clone()
	}
	s.reservations = append([]model.Reservation(nil), seed.Reservations...)
	s.menuItems = make([]model.MenuItem, len(seed.MenuItems))
	for i, m := range seed.MenuItems {
		s.menuItems[i] = cloneMenuItem(m)
	}
	s.categories = append([]model.Category(nil), seed.Categories...)
	s.customers = append([]model.Customer(nil), seed.Customers...)

	for _, r := range s.reservations {
		s.reservationSeq = max(s.reservationSeq, numericSuffix(r.ID))
	}
	for _, o := range s.orders {
		s.orderSeq = max(s.orderSeq, numericSuffix(o.ID))
	}

	return s
}

// write runs fn under the write lock and delivers the notifications it
// returns once the lock is released.
func (s *Store) write(fn func() []Notification) {
	var notes []Notification
	func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		notes = fn()
	}()
	s.emit(notes...)
}

func (s *Store) emit(notes ...Notification) {
	if s.notifier == nil {
		return
	}
	for _, n := range notes {
		s.deliver(n)
	}
}

func (s *Store) deliver(n Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARN: notifier failed for %s %s: %v", n.Kind, n.EntityID, r)
		}
	}()
	s.notifier.Notify(n)
}

func (s *Store) note(kind, entity, id, msg string) Notification {
	return Notification{Kind: kind, Entity: entity, EntityID: id, Message: msg, At: s.now()}
}

// numericSuffix returns the trailing decimal digits of id, or 0.
func numericSuffix(id string) int {
	end := len(id)
	start := end
	for start > 0 && id[start-1] >= '0' && id[start-1] <= '9' {
		start--
	}
	if start == end {
		return 0
	}
	n, err := strconv.Atoi(id[start:end])
	if err != nil {
		return 0
	}
	return n
}

func (s *Store) nextReservationID() string {
	s.reservationSeq++
	return "res-" + strconv.Itoa(s.reservationSeq)
}

func (s *Store) nextOrderID() string {
	s.orderSeq++
	return "order-" + strconv.Itoa(s.orderSeq)
}

func cloneMenuItem(m model.MenuItem) model.MenuItem {
	if m.Ingredients != nil {
		m.Ingredients = append([]string(nil), m.Ingredients...)
	}
	return m
}

func defaultString(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
