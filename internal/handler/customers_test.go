package handler_test

import (
	"net/http"
	"testing"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/handler"
)

func TestCustomerList(t *testing.T) {
	router := mount("/customers", enum.UserRoleWaiter, handler.NewCustomerHandler(newTestStore(t)).RegisterRoutes)

	tests := []struct {
		name  string
		path  string
		count int
	}{
		{"all", "/customers", 6},
		{"by name", "/customers?search=ibn", 5},
		{"by phone", "/customers?search=342", 1},
		{"no match", "/customers?search=zzz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, "GET", tt.path, nil)
			expectStatus(t, rr, http.StatusOK)
			if got := len(decodeList(t, rr)); got != tt.count {
				t.Errorf("got %d customers, want %d", got, tt.count)
			}
		})
	}
}

func TestCustomerGet(t *testing.T) {
	router := mount("/customers", enum.UserRoleWaiter, handler.NewCustomerHandler(newTestStore(t)).RegisterRoutes)

	rr := doJSON(t, router, "GET", "/customers/cust3", nil)
	expectStatus(t, rr, http.StatusOK)
	if resp := decodeResponse(t, rr); resp["name"] != "Ali" {
		t.Errorf("name: got %v", resp["name"])
	}

	rr = doJSON(t, router, "GET", "/customers/cust99", nil)
	expectStatus(t, rr, http.StatusNotFound)
}
