package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/auth"
	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/middleware"
	"github.com/kiwari-pos/floor/internal/store"
)

const testSecret = "test-secret"

var testNow = time.Date(2024, 1, 11, 18, 0, 0, 0, time.UTC)

// newTestStore returns a store built from the demo floor.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	seed, err := store.DefaultSeed(testNow)
	if err != nil {
		t.Fatalf("default seed: %v", err)
	}
	return store.New(seed)
}

// asRole injects claims for role, standing in for Authenticate.
func asRole(role enum.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := &auth.Claims{UserID: "user1", Name: "Test", Role: role}
			next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), claims)))
		})
	}
}

// mount builds a router with register mounted at prefix, signed in as role.
func mount(prefix string, role enum.UserRole, register func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.Use(asRole(role))
	r.Route(prefix, register)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("marshal request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, want, rr.Body.String())
	}
}
