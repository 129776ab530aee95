package handler_test

import (
	"net/http"
	"testing"

	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/handler"
	"github.com/kiwari-pos/floor/internal/store"
)

func newTableRouter(st *store.Store) http.Handler {
	return mount("/tables", enum.UserRoleWaiter, handler.NewTableHandler(st).RegisterRoutes)
}

func TestTableList(t *testing.T) {
	router := newTableRouter(newTestStore(t))

	rr := doJSON(t, router, "GET", "/tables", nil)
	expectStatus(t, rr, http.StatusOK)
	tables := decodeList(t, rr)
	if len(tables) != 12 {
		t.Fatalf("tables: got %d, want 12", len(tables))
	}
	style, ok := tables[0]["status_style"].(map[string]interface{})
	if !ok || style["label"] == "" {
		t.Errorf("expected status_style on every table, got %v", tables[0]["status_style"])
	}

	rr = doJSON(t, router, "GET", "/tables?status=reserved", nil)
	expectStatus(t, rr, http.StatusOK)
	for _, tbl := range decodeList(t, rr) {
		if tbl["status"] != "reserved" {
			t.Errorf("filter leaked table %v with status %v", tbl["id"], tbl["status"])
		}
	}

	rr = doJSON(t, router, "GET", "/tables?status=broken", nil)
	expectStatus(t, rr, http.StatusBadRequest)
}

func TestTableGet(t *testing.T) {
	router := newTableRouter(newTestStore(t))

	rr := doJSON(t, router, "GET", "/tables/table3", nil)
	expectStatus(t, rr, http.StatusOK)
	resp := decodeResponse(t, rr)
	if resp["number"] != "#3" {
		t.Errorf("number: got %v", resp["number"])
	}
	if orders := resp["orders"].([]interface{}); len(orders) != 1 {
		t.Errorf("orders on table3: got %d, want 1", len(orders))
	}
	if res := resp["reservations"].([]interface{}); len(res) != 1 {
		t.Errorf("reservations on table3: got %d, want 1", len(res))
	}

	rr = doJSON(t, router, "GET", "/tables/table99", nil)
	expectStatus(t, rr, http.StatusNotFound)
}

func TestTableUpdateStatus(t *testing.T) {
	st := newTestStore(t)
	router := newTableRouter(st)

	rr := doJSON(t, router, "PATCH", "/tables/table1/status", map[string]string{"status": "occupied"})
	expectStatus(t, rr, http.StatusOK)
	if resp := decodeResponse(t, rr); resp["status"] != "occupied" {
		t.Errorf("status: got %v", resp["status"])
	}
	if tbl, _ := st.Table("table1"); tbl.Status != enum.TableStatusOccupied {
		t.Errorf("store not updated: %s", tbl.Status)
	}

	tests := []struct {
		name string
		path string
		body interface{}
		want int
	}{
		{"unknown table", "/tables/table99/status", map[string]string{"status": "available"}, http.StatusNotFound},
		{"unknown status", "/tables/table1/status", map[string]string{"status": "dirty"}, http.StatusBadRequest},
		{"malformed body", "/tables/table1/status", "{", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, "PATCH", tt.path, tt.body)
			expectStatus(t, rr, tt.want)
		})
	}
}
