package store

import (
	"github.com/google/uuid"

	"github.com/kiwari-pos/floor/internal/model"
)

// MenuItems returns the menu in display order.
func (s *Store) MenuItems() []model.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MenuItem, len(s.menuItems))
	for i, m := range s.menuItems {
		out[i] = cloneMenuItem(m)
	}
	return out
}

// MenuItem looks a menu item up by id.
func (s *Store) MenuItem(id string) (model.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.menuItemIndex(id); i >= 0 {
		return cloneMenuItem(s.menuItems[i]), true
	}
	return model.MenuItem{}, false
}

// Categories returns the menu categories.
func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category(nil), s.categories...)
}

// Customers returns the customer directory.
func (s *Store) Customers() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Customer, len(s.customers))
	for i, c := range s.customers {
		if c.FavoriteDishes != nil {
			c.FavoriteDishes = append([]string(nil), c.FavoriteDishes...)
		}
		out[i] = c
	}
	return out
}

// User returns the signed-in staff profile.
func (s *Store) User() model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// AddMenuItem appends item to the menu, assigning an id if it has none.
func (s *Store) AddMenuItem(item model.MenuItem) model.MenuItem {
	item = cloneMenuItem(item)
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	s.write(func() []Notification {
		s.menuItems = append(s.menuItems, item)
		return []Notification{s.note("menu.item_added", "menu", item.ID, "Menu item added: "+item.Name)}
	})
	return cloneMenuItem(item)
}

// UpdateMenuItem replaces the item with the same id.
func (s *Store) UpdateMenuItem(item model.MenuItem) bool {
	var ok bool
	s.write(func() []Notification {
		i := s.menuItemIndex(item.ID)
		if i < 0 {
			return nil
		}
		s.menuItems[i] = cloneMenuItem(item)
		ok = true
		return []Notification{s.note("menu.item_updated", "menu", item.ID, "Menu item updated: "+item.Name)}
	})
	return ok
}

// DeleteMenuItem removes the item with the given id. Tickets keep the name
// and price they captured.
func (s *Store) DeleteMenuItem(id string) bool {
	var ok bool
	s.write(func() []Notification {
		i := s.menuItemIndex(id)
		if i < 0 {
			return nil
		}
		name := s.menuItems[i].Name
		s.menuItems = append(s.menuItems[:i], s.menuItems[i+1:]...)
		ok = true
		return []Notification{s.note("menu.item_deleted", "menu", id, "Menu item deleted: "+name)}
	})
	return ok
}

// AddCategory appends a category, assigning an id if it has none.
func (s *Store) AddCategory(c model.Category) model.Category {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.write(func() []Notification {
		s.categories = append(s.categories, c)
		return []Notification{s.note("menu.category_added", "menu", c.ID, "Category added: "+c.Name)}
	})
	return c
}

func (s *Store) menuItemIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.menuItems {
		if s.menuItems[i].ID == id {
			return i
		}
	}
	return -1
}
