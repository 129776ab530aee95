// Package model holds the floor entities shared by the store, the services
// and the HTTP layer.
package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiwari-pos/floor/internal/enum"
)

type Table struct {
	ID       string           `json:"id"`
	Number   string           `json:"number"`
	Capacity int              `json:"capacity"`
	Status   enum.TableStatus `json:"status"`
	Section  string           `json:"section"`
	Area     string           `json:"area,omitempty"`
}

type OrderItem struct {
	ID                  string          `json:"id"`
	MenuItemID          string          `json:"menu_item_id"`
	Name                string          `json:"name"`
	Price               decimal.Decimal `json:"price"`
	Quantity            int             `json:"quantity"`
	Modifiers           []string        `json:"modifiers,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// Subtotal is the unit price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameLine reports whether two items would be printed as one line on a ticket.
func (i OrderItem) SameLine(other OrderItem) bool {
	if i.MenuItemID != other.MenuItemID || i.SpecialInstructions != other.SpecialInstructions {
		return false
	}
	if len(i.Modifiers) != len(other.Modifiers) {
		return false
	}
	for k := range i.Modifiers {
		if i.Modifiers[k] != other.Modifiers[k] {
			return false
		}
	}
	return true
}

type Order struct {
	ID            string              `json:"id"`
	TableID       string              `json:"table_id"`
	TableNumber   string              `json:"table_number"`
	Status        enum.OrderStatus    `json:"status"`
	Items         []OrderItem         `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	PaymentStatus *enum.PaymentStatus `json:"payment_status,omitempty"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method,omitempty"`
	CustomerName  string              `json:"customer_name,omitempty"`
}

// Recompute sets Total to the sum of the line subtotals.
func (o *Order) Recompute() {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	o.Total = total
}

// Paid reports whether the order has been settled.
func (o Order) Paid() bool {
	return o.PaymentStatus != nil && *o.PaymentStatus == enum.PaymentStatusPaid
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	c := o
	if o.Items != nil {
		c.Items = make([]OrderItem, len(o.Items))
		for i, it := range o.Items {
			if it.Modifiers != nil {
				it.Modifiers = append([]string(nil), it.Modifiers...)
			}
			c.Items[i] = it
		}
	}
	if o.PaymentStatus != nil {
		ps := *o.PaymentStatus
		c.PaymentStatus = &ps
	}
	if o.PaymentMethod != nil {
		pm := *o.PaymentMethod
		c.PaymentMethod = &pm
	}
	return c
}

type Reservation struct {
	ID            string                 `json:"id"`
	TableID       string                 `json:"table_id"`
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone"`
	Guests        int                    `json:"guests"`
	Time          time.Time              `json:"time"`
	Status        enum.ReservationStatus `json:"status"`
	Notes         string                 `json:"notes,omitempty"`
}

type MenuItem struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Image           string          `json:"image,omitempty"`
	Description     string          `json:"description,omitempty"`
	Ingredients     []string        `json:"ingredients,omitempty"`
	PreparationTime int             `json:"preparation_time,omitempty"`
	Available       bool            `json:"available"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count"`
}

type Customer struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email,omitempty"`
	Visits         int             `json:"visits"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	FavoriteDishes []string        `json:"favorite_dishes,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	LastVisit      *time.Time      `json:"last_visit,omitempty"`
}

type UserProfile struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Role   enum.UserRole `json:"role"`
	Avatar string        `json:"avatar,omitempty"`
	Email  string        `json:"email"`
}
