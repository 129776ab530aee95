package store

import (
	"fmt"
	"time"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
)

// NewReservation is a partial reservation. Zero values fall back to the
// defaults: customer "Guest", one guest, booked for now.
type NewReservation struct {
	TableID       string
	CustomerName  string
	CustomerPhone string
	Guests        int
	Time          time.Time
	Notes         string
}

// Reservations returns every reservation in booking order.
func (s *Store) Reservations() []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Reservation(nil), s.reservations...)
}

// ReservationsByTable returns the reservations held against a table.
func (s *Store) ReservationsByTable(tableID string) []model.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Reservation
	for _, r := range s.reservations {
		if r.TableID == tableID {
			out = append(out, r)
		}
	}
	return out
}

// Reservation looks a reservation up by id.
func (s *Store) Reservation(id string) (model.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.reservationIndex(id); i >= 0 {
		return s.reservations[i], true
	}
	return model.Reservation{}, false
}

// AddReservation books a table. The new reservation is Confirmed and, when a
// table id is given, the table becomes Reserved in the same step. An unknown
// table id is rejected, as is a table that already holds a confirmed
// reservation.
func (s *Store) AddReservation(in NewReservation) (model.Reservation, error) {
	if in.Guests < 0 {
		return model.Reservation{}, ErrInvalidPartySize
	}

	var (
		out model.Reservation
		err error
	)
	s.write(func() []Notification {
		if in.TableID != "" {
			if s.tableIndex(in.TableID) < 0 {
				err = fmt.Errorf("%w: %s", ErrTableNotFound, in.TableID)
				return nil
			}
			if s.tableHasActiveReservation(in.TableID) {
				err = fmt.Errorf("%w: %s", ErrTableAlreadyReserved, in.TableID)
				return nil
			}
		}

		r := model.Reservation{
			ID:            s.nextReservationID(),
			TableID:       in.TableID,
			CustomerName:  defaultString(in.CustomerName, "Guest"),
			CustomerPhone: in.CustomerPhone,
			Guests:        in.Guests,
			Time:          in.Time,
			Status:        enum.ReservationStatusConfirmed,
			Notes:         in.Notes,
		}
		if r.Guests == 0 {
			r.Guests = 1
		}
		if r.Time.IsZero() {
			r.Time = s.now()
		}
		s.reservations = append(s.reservations, r)
		out = r

		notes := []Notification{s.note("reservation.created", "reservation", r.ID,
			"Reservation created for "+r.CustomerName)}
		if ok, n := s.setTableStatusLocked(r.TableID, enum.TableStatusReserved); ok {
			notes = append(notes, n)
		}
		return notes
	})
	return out, err
}

// UpdateReservation moves a reservation to st and applies the matching table
// side effect: Arrived seats the party (Occupied); Cancelled and NoShow free
// the table (Available). Setting Confirmed on a confirmed reservation is a
// no-op. Returns false for unknown ids and undefined transitions.
func (s *Store) UpdateReservation(id string, st enum.ReservationStatus) bool {
	var ok bool
	s.write(func() []Notification {
		var notes []Notification
		ok, notes = s.transitionReservationLocked(id, st)
		return notes
	})
	return ok
}

// CancelReservation cancels a confirmed reservation and frees its table.
func (s *Store) CancelReservation(id string) bool {
	return s.UpdateReservation(id, enum.ReservationStatusCancelled)
}

func (s *Store) transitionReservationLocked(id string, st enum.ReservationStatus) (bool, []Notification) {
	i := s.reservationIndex(id)
	if i < 0 {
		return false, nil
	}
	r := &s.reservations[i]
	if r.Status == st && st == enum.ReservationStatusConfirmed {
		return true, nil
	}
	if !enum.CanTransitionReservation(r.Status, st) {
		return false, nil
	}

	var table enum.TableStatus
	switch st {
	case enum.ReservationStatusArrived:
		table = enum.TableStatusOccupied
	case enum.ReservationStatusCancelled, enum.ReservationStatusNoShow:
		table = enum.TableStatusAvailable
	}

	r.Status = st
	kind := "reservation.updated"
	if st == enum.ReservationStatusCancelled {
		kind = "reservation.cancelled"
	}
	notes := []Notification{s.note(kind, "reservation", r.ID,
		"Reservation for "+r.CustomerName+" is now "+string(st))}
	if ok, n := s.setTableStatusLocked(r.TableID, table); ok {
		notes = append(notes, n)
	}
	return true, notes
}

func (s *Store) tableHasActiveReservation(tableID string) bool {
	for _, r := range s.reservations {
		if r.TableID == tableID && r.Status == enum.ReservationStatusConfirmed {
			return true
		}
	}
	return false
}

func (s *Store) reservationIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.reservations {
		if s.reservations[i].ID == id {
			return i
		}
	}
	return -1
}
