package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
)

// NewOrder holds the fields needed to open a ticket.
type NewOrder struct {
	TableID      string
	Status       enum.OrderStatus
	CustomerName string
}

// NewOrderItem is a line to add to a ticket. Price and name are taken from
// MenuItem at the time of the call.
type NewOrderItem struct {
	MenuItem            model.MenuItem
	Quantity            int
	Modifiers           []string
	SpecialInstructions string
}

// Orders returns every ticket, oldest first.
func (s *Store) Orders() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders, func(model.Order) bool { return true })
}

// OrdersByStatus returns the tickets currently in status st.
func (s *Store) OrdersByStatus(st enum.OrderStatus) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders, func(o model.Order) bool { return o.Status == st })
}

// OrdersByTable returns the tickets opened against a table.
func (s *Store) OrdersByTable(tableID string) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrders(s.orders, func(o model.Order) bool { return o.TableID == tableID })
}

// Order looks a ticket up by id.
func (s *Store) Order(id string) (model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.orderIndex(id); i >= 0 {
		return s.orders[i].Clone(), true
	}
	return model.Order{}, false
}

// OpenOrder creates a ticket against an existing table.
func (s *Store) OpenOrder(in NewOrder) (model.Order, error) {
	st := in.Status
	if st == "" {
		st = enum.OrderStatusNew
	}
	if !enum.InitialOrderStatus(st) {
		return model.Order{}, fmt.Errorf("%w: %s", ErrInvalidInitialStatus, st)
	}

	var (
		out model.Order
		err error
	)
	s.write(func() []Notification {
		ti := s.tableIndex(in.TableID)
		if ti < 0 {
			err = fmt.Errorf("%w: %s", ErrTableNotFound, in.TableID)
			return nil
		}
		now := s.now()
		o := model.Order{
			ID:           s.nextOrderID(),
			TableID:      in.TableID,
			TableNumber:  s.tables[ti].Number,
			Status:       st,
			Items:        []model.OrderItem{},
			CreatedAt:    now,
			UpdatedAt:    now,
			CustomerName: in.CustomerName,
		}
		o.Recompute()
		s.orders = append(s.orders, o)
		out = o.Clone()
		return []Notification{s.note("order.opened", "order", o.ID,
			"Order opened for table "+o.TableNumber)}
	})
	return out, err
}

// UpdateOrderStatus sets a ticket's status without checking the transition
// table and refreshes UpdatedAt. Returns false when the order does not exist.
func (s *Store) UpdateOrderStatus(id string, st enum.OrderStatus) bool {
	var ok bool
	s.write(func() []Notification {
		i := s.orderIndex(id)
		if i < 0 {
			return nil
		}
		ok = true
		s.setOrderStatusLocked(i, st)
		return []Notification{s.note("order.status_updated", "order", id,
			"Order status updated to "+string(st))}
	})
	return ok
}

// AdvanceOrderStatus moves a ticket to st only if the transition is defined.
func (s *Store) AdvanceOrderStatus(id string, st enum.OrderStatus) (model.Order, error) {
	var (
		out model.Order
		err error
	)
	s.write(func() []Notification {
		i := s.orderIndex(id)
		if i < 0 {
			err = fmt.Errorf("%w: %s", ErrOrderNotFound, id)
			return nil
		}
		cur := s.orders[i].Status
		if !enum.CanTransitionOrder(cur, st) {
			err = fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, st)
			return nil
		}
		s.setOrderStatusLocked(i, st)
		out = s.orders[i].Clone()
		return []Notification{s.note("order.status_updated", "order", id,
			"Order status updated to "+string(st))}
	})
	return out, err
}

// AddOrderItem adds qty of item to the currently selected ticket.
func (s *Store) AddOrderItem(item model.MenuItem, qty int) bool {
	s.mu.RLock()
	id := s.selection.OrderID
	s.mu.RUnlock()
	if id == "" {
		return false
	}
	_, ok := s.AddItemToOrder(id, NewOrderItem{MenuItem: item, Quantity: qty})
	return ok
}

// AddItemToOrder appends a line to an open ticket, merging it into an
// identical existing line, and recomputes the total. Non-positive quantities,
// unknown orders and completed or cancelled orders are ignored.
func (s *Store) AddItemToOrder(orderID string, in NewOrderItem) (model.Order, bool) {
	if in.Quantity <= 0 {
		return model.Order{}, false
	}

	var (
		out model.Order
		ok  bool
	)
	s.write(func() []Notification {
		i := s.orderIndex(orderID)
		if i < 0 || s.orders[i].Status.Terminal() {
			return nil
		}
		o := &s.orders[i]

		line := model.OrderItem{
			MenuItemID:          in.MenuItem.ID,
			Name:                in.MenuItem.Name,
			Price:               in.MenuItem.Price,
			Quantity:            in.Quantity,
			SpecialInstructions: in.SpecialInstructions,
		}
		if len(in.Modifiers) > 0 {
			line.Modifiers = append([]string(nil), in.Modifiers...)
		}

		merged := false
		for k := range o.Items {
			if o.Items[k].SameLine(line) {
				o.Items[k].Quantity += in.Quantity
				merged = true
				break
			}
		}
		if !merged {
			line.ID = uuid.NewString()
			o.Items = append(o.Items, line)
		}
		o.Recompute()
		o.UpdatedAt = s.laterOf(o.UpdatedAt)

		ok = true
		out = o.Clone()
		return []Notification{s.note("order.item_added", "order", o.ID,
			"Added "+strconv.Itoa(in.Quantity)+"x "+line.Name+" to order")}
	})
	return out, ok
}

// RemoveOrderItem removes a line from whichever open ticket holds it.
func (s *Store) RemoveOrderItem(orderItemID string) bool {
	var ok bool
	s.write(func() []Notification {
		if orderItemID == "" {
			return nil
		}
		for i := range s.orders {
			o := &s.orders[i]
			if o.Status.Terminal() {
				continue
			}
			for k := range o.Items {
				if o.Items[k].ID != orderItemID {
					continue
				}
				o.Items = append(o.Items[:k], o.Items[k+1:]...)
				o.Recompute()
				o.UpdatedAt = s.laterOf(o.UpdatedAt)
				ok = true
				return []Notification{s.note("order.item_removed", "order", o.ID,
					"Item removed from order")}
			}
		}
		return nil
	})
	return ok
}

// SettleOrder marks a ticket paid with method and completes it. billed is
// the subtotal the customer was charged; a ticket whose total no longer
// matches it is left open and ErrOrderChanged is returned.
func (s *Store) SettleOrder(id string, method enum.PaymentMethod, billed decimal.Decimal) (model.Order, error) {
	var (
		out model.Order
		err error
	)
	s.write(func() []Notification {
		i := s.orderIndex(id)
		if i < 0 {
			err = fmt.Errorf("%w: %s", ErrOrderNotFound, id)
			return nil
		}
		o := &s.orders[i]
		switch {
		case o.Status == enum.OrderStatusCancelled:
			err = fmt.Errorf("%w: order is cancelled", ErrOrderNotPayable)
		case o.Paid():
			err = fmt.Errorf("%w: order is already paid", ErrOrderNotPayable)
		case len(o.Items) == 0:
			err = fmt.Errorf("%w: order has no items", ErrOrderNotPayable)
		case !o.Total.Equal(billed):
			err = fmt.Errorf("%w: billed %s, order total is %s", ErrOrderChanged, billed, o.Total)
		}
		if err != nil {
			return nil
		}

		paid := enum.PaymentStatusPaid
		o.PaymentStatus = &paid
		o.PaymentMethod = &method
		s.setOrderStatusLocked(i, enum.OrderStatusCompleted)
		out = o.Clone()
		return []Notification{s.note("order.paid", "order", id,
			"Payment received for table "+o.TableNumber)}
	})
	return out, err
}

func (s *Store) setOrderStatusLocked(i int, st enum.OrderStatus) {
	s.orders[i].Status = st
	s.orders[i].UpdatedAt = s.laterOf(s.orders[i].UpdatedAt)
}

// laterOf returns the current time, or prev if the clock reads earlier.
func (s *Store) laterOf(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (s *Store) orderIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.orders {
		if s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneOrders(src []model.Order, keep func(model.Order) bool) []model.Order {
	out := make([]model.Order, 0, len(src))
	for _, o := range src {
		if keep(o) {
			out = append(out, o.Clone())
		}
	}
	return out
}
