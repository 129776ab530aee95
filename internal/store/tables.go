package store

import (
	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/model"
)

// Tables returns every table in seating-plan order.
func (s *Store) Tables() []model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Table(nil), s.tables...)
}

// TablesByStatus returns the tables currently in status st.
func (s *Store) TablesByStatus(st enum.TableStatus) []model.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Table
	for _, t := range s.tables {
		if t.Status == st {
			out = append(out, t)
		}
	}
	return out
}

// Table looks a table up by id.
func (s *Store) Table(id string) (model.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.tableIndex(id); i >= 0 {
		return s.tables[i], true
	}
	return model.Table{}, false
}

// UpdateTableStatus sets a table's status. Setting the current status again
// is harmless. Returns false when the table does not exist.
func (s *Store) UpdateTableStatus(id string, st enum.TableStatus) bool {
	var ok bool
	s.write(func() []Notification {
		var n Notification
		ok, n = s.setTableStatusLocked(id, st)
		if !ok {
			return nil
		}
		return []Notification{n}
	})
	return ok
}

// setTableStatusLocked must be called with s.mu held for writing.
func (s *Store) setTableStatusLocked(id string, st enum.TableStatus) (bool, Notification) {
	i := s.tableIndex(id)
	if i < 0 {
		return false, Notification{}
	}
	s.tables[i].Status = st
	return true, s.note("table.status_updated", "table", id,
		"Table "+s.tables[i].Number+" is now "+string(st))
}

func (s *Store) tableIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.tables {
		if s.tables[i].ID == id {
			return i
		}
	}
	return -1
}
