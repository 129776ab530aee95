package store

import (
	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/floor/internal/enum"
)

// Summary is the floor overview shown on the dashboard.
type Summary struct {
	Tables       map[enum.TableStatus]int       `json:"tables"`
	Orders       map[enum.OrderStatus]int       `json:"orders"`
	Reservations map[enum.ReservationStatus]int `json:"reservations"`
	ActiveOrders int                            `json:"active_orders"`
	Revenue      decimal.Decimal                `json:"revenue"`
}

// Summary counts entities per status. Revenue is the sum of paid order
// totals, before tax and tip.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := Summary{
		Tables:       make(map[enum.TableStatus]int),
		Orders:       make(map[enum.OrderStatus]int),
		Reservations: make(map[enum.ReservationStatus]int),
		Revenue:      decimal.Zero,
	}
	for _, t := range s.tables {
		sum.Tables[t.Status]++
	}
	for _, o := range s.orders {
		sum.Orders[o.Status]++
		if !o.Status.Terminal() {
			sum.ActiveOrders++
		}
		if o.Paid() {
			sum.Revenue = sum.Revenue.Add(o.Total)
		}
	}
	for _, r := range s.reservations {
		sum.Reservations[r.Status]++
	}
	return sum
}
