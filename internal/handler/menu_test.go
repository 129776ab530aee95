package handler_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/handler"
	"github.com/kiwari-pos/floor/internal/store"
)

func newMenuRouter(st *store.Store, role enum.UserRole) http.Handler {
	h := handler.NewMenuHandler(st)
	r := chi.NewRouter()
	r.Use(asRole(role))
	r.Route("/menu", h.RegisterRoutes)
	r.Route("/categories", h.RegisterCategoryRoutes)
	return r
}

func TestMenuList_Filters(t *testing.T) {
	router := newMenuRouter(newTestStore(t), enum.UserRoleWaiter)

	tests := []struct {
		name  string
		path  string
		count int
	}{
		{"all", "/menu", 13},
		{"all category", "/menu?category=all", 13},
		{"dessert", "/menu?category=Dessert", 6},
		{"search is case-insensitive", "/menu?q=PANCAKE", 3},
		{"category and search", "/menu?category=Salad&q=shrimp", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, "GET", tt.path, nil)
			expectStatus(t, rr, http.StatusOK)
			if got := len(decodeList(t, rr)); got != tt.count {
				t.Errorf("got %d items, want %d", got, tt.count)
			}
		})
	}
}

func TestMenuCRUD(t *testing.T) {
	st := newTestStore(t)
	router := newMenuRouter(st, enum.UserRoleManager)

	rr := doJSON(t, router, "POST", "/menu", map[string]interface{}{
		"name":     "Lemon Tart",
		"category": "Dessert",
		"price":    "9.50",
	})
	expectStatus(t, rr, http.StatusCreated)
	created := decodeResponse(t, rr)
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatal("expected generated id")
	}
	if created["available"] != true {
		t.Error("new items should default to available")
	}

	rr = doJSON(t, router, "PUT", "/menu/"+id, map[string]interface{}{
		"name":      "Lemon Tart",
		"category":  "Dessert",
		"price":     "11",
		"available": false,
	})
	expectStatus(t, rr, http.StatusOK)
	item, _ := st.MenuItem(id)
	if item.Available || item.Price.String() != "11" {
		t.Errorf("update not applied: %+v", item)
	}

	rr = doJSON(t, router, "GET", "/menu/"+id, nil)
	expectStatus(t, rr, http.StatusOK)

	rr = doJSON(t, router, "DELETE", "/menu/"+id, nil)
	expectStatus(t, rr, http.StatusNoContent)
	if _, ok := st.MenuItem(id); ok {
		t.Error("item still present after delete")
	}

	rr = doJSON(t, router, "DELETE", "/menu/"+id, nil)
	expectStatus(t, rr, http.StatusNotFound)
	rr = doJSON(t, router, "PUT", "/menu/"+id, map[string]interface{}{"name": "x", "category": "y", "price": "1"})
	expectStatus(t, rr, http.StatusNotFound)
}

func TestMenuCreate_Validation(t *testing.T) {
	router := newMenuRouter(newTestStore(t), enum.UserRoleAdmin)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{"category": "Dessert", "price": "1"}},
		{"missing category", map[string]interface{}{"name": "Tart", "price": "1"}},
		{"bad price", map[string]interface{}{"name": "Tart", "category": "Dessert", "price": "cheap"}},
		{"negative price", map[string]interface{}{"name": "Tart", "category": "Dessert", "price": "-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, "POST", "/menu", tt.body)
			expectStatus(t, rr, http.StatusBadRequest)
		})
	}
}

func TestMenuWrites_RequireManager(t *testing.T) {
	router := newMenuRouter(newTestStore(t), enum.UserRoleWaiter)

	rr := doJSON(t, router, "POST", "/menu", map[string]interface{}{"name": "Tart", "category": "Dessert", "price": "1"})
	expectStatus(t, rr, http.StatusForbidden)

	rr = doJSON(t, router, "DELETE", "/menu/item1", nil)
	expectStatus(t, rr, http.StatusForbidden)

	rr = doJSON(t, router, "POST", "/categories", map[string]string{"name": "Soup"})
	expectStatus(t, rr, http.StatusForbidden)
}

func TestCategories(t *testing.T) {
	st := newTestStore(t)
	router := newMenuRouter(st, enum.UserRoleManager)

	rr := doJSON(t, router, "GET", "/categories", nil)
	expectStatus(t, rr, http.StatusOK)
	if got := len(decodeList(t, rr)); got != 18 {
		t.Errorf("categories: got %d, want 18", got)
	}

	rr = doJSON(t, router, "POST", "/categories", map[string]string{"name": "Soup", "icon": "soup"})
	expectStatus(t, rr, http.StatusCreated)
	if got := len(st.Categories()); got != 19 {
		t.Errorf("categories after add: got %d, want 19", got)
	}

	rr = doJSON(t, router, "POST", "/categories", map[string]string{"icon": "soup"})
	expectStatus(t, rr, http.StatusBadRequest)
}
