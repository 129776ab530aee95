package store

// Selection returns the entities currently selected for detail views.
func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SelectOrder makes id the active order. An empty id clears the selection;
// an unknown id leaves it unchanged and returns false.
func (s *Store) SelectOrder(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.orderIndex(id) < 0 {
		return false
	}
	s.selection.OrderID = id
	return true
}

// SelectTable makes id the active table.
func (s *Store) SelectTable(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.tableIndex(id) < 0 {
		return false
	}
	s.selection.TableID = id
	return true
}

// SelectCategory makes id the active menu category.
func (s *Store) SelectCategory(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && !s.hasCategory(id) {
		return false
	}
	s.selection.CategoryID = id
	return true
}

func (s *Store) hasCategory(id string) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
