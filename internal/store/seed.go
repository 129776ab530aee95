package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
)

//go:embed seed.json
var defaultSeed []byte

// Seed is the initial floor state a Store is built from.
type Seed struct {
	User         model.UserProfile
	Tables       []model.Table
	Orders       []model.Order
	Reservations []model.Reservation
	MenuItems    []model.MenuItem
	Categories   []model.Category
	Customers    []model.Customer
}

type seedDocument struct {
	User         model.UserProfile   `json:"user"`
	Tables       []model.Table       `json:"tables"`
	Orders       []orderSeed         `json:"orders"`
	Reservations []model.Reservation `json:"reservations"`
	MenuItems    []model.MenuItem    `json:"menu_items"`
	Categories   []model.Category    `json:"categories"`
	Customers    []model.Customer    `json:"customers"`
}

// orderSeed places tickets relative to load time so a fresh floor always
// shows recent activity.
type orderSeed struct {
	model.Order
	CreatedMinutesAgo int `json:"created_minutes_ago"`
	UpdatedMinutesAgo int `json:"updated_minutes_ago"`
}

// DefaultSeed returns the built-in demo floor.
func DefaultSeed(now time.Time) (Seed, error) {
	return LoadSeed(bytes.NewReader(defaultSeed), now)
}

// LoadSeed decodes a seed document. Relative order timestamps and
// reservations without a time are resolved against now.
func LoadSeed(r io.Reader, now time.Time) (Seed, error) {
	var doc seedDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Seed{}, fmt.Errorf("decode seed: %w", err)
	}
	if len(doc.Tables) == 0 {
		return Seed{}, errors.New("seed does not contain tables")
	}

	seed := Seed{
		User:         doc.User,
		Tables:       doc.Tables,
		Reservations: doc.Reservations,
		MenuItems:    doc.MenuItems,
		Categories:   doc.Categories,
		Customers:    doc.Customers,
	}

	tableIDs := make(map[string]bool, len(doc.Tables))
	for _, t := range doc.Tables {
		if t.ID == "" {
			return Seed{}, errors.New("seed table without id")
		}
		if tableIDs[t.ID] {
			return Seed{}, fmt.Errorf("duplicate seed table %q", t.ID)
		}
		if !t.Status.Valid() {
			return Seed{}, fmt.Errorf("seed table %q: invalid status %q", t.ID, t.Status)
		}
		tableIDs[t.ID] = true
	}

	orderIDs := make(map[string]bool, len(doc.Orders))
	for _, so := range doc.Orders {
		o := so.Order
		if o.ID == "" {
			return Seed{}, errors.New("seed order without id")
		}
		if orderIDs[o.ID] {
			return Seed{}, fmt.Errorf("duplicate seed order %q", o.ID)
		}
		orderIDs[o.ID] = true
		if !o.Status.Valid() {
			return Seed{}, fmt.Errorf("seed order %q: invalid status %q", o.ID, o.Status)
		}
		if !tableIDs[o.TableID] {
			return Seed{}, fmt.Errorf("seed order %q: unknown table %q", o.ID, o.TableID)
		}
		if o.CreatedAt.IsZero() {
			o.CreatedAt = now.Add(-time.Duration(so.CreatedMinutesAgo) * time.Minute)
		}
		if o.UpdatedAt.IsZero() {
			o.UpdatedAt = now.Add(-time.Duration(so.UpdatedMinutesAgo) * time.Minute)
		}
		if o.Items == nil {
			o.Items = []model.OrderItem{}
		}
		o.Recompute()
		seed.Orders = append(seed.Orders, o)
	}

	resIDs := make(map[string]bool, len(seed.Reservations))
	booked := make(map[string]string)
	for i := range seed.Reservations {
		r := &seed.Reservations[i]
		if r.ID == "" {
			return Seed{}, errors.New("seed reservation without id")
		}
		if resIDs[r.ID] {
			return Seed{}, fmt.Errorf("duplicate seed reservation %q", r.ID)
		}
		resIDs[r.ID] = true
		if !r.Status.Valid() {
			return Seed{}, fmt.Errorf("seed reservation %q: invalid status %q", r.ID, r.Status)
		}
		if r.TableID != "" && !tableIDs[r.TableID] {
			return Seed{}, fmt.Errorf("seed reservation %q: unknown table %q", r.ID, r.TableID)
		}
		if r.TableID != "" && r.Status == enum.ReservationStatusConfirmed {
			if prev, ok := booked[r.TableID]; ok {
				return Seed{}, fmt.Errorf("seed reservation %q: table %q already booked by %q", r.ID, r.TableID, prev)
			}
			booked[r.TableID] = r.ID
		}
		if r.Time.IsZero() {
			r.Time = now
		}
	}

	return seed, nil
}
