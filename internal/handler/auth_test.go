package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/auth"
	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/handler"
	"github.com/kiwari-pos/floor/internal/middleware"
)

func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()
	hash, err := auth.HashPassword("correct-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	staff := auth.NewDirectory(auth.Account{
		ID:           "user2",
		Name:         "Test Cashier",
		Email:        "cashier@test.com",
		PasswordHash: hash,
		Role:         enum.UserRoleCashier,
	})

	h := handler.NewAuthHandler(staff, testSecret)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	r.With(middleware.Authenticate(testSecret)).Get("/auth/me", h.Me)
	return r
}

// --- Login tests ---

func TestLogin_Success(t *testing.T) {
	router := newAuthRouter(t)

	rr := doJSON(t, router, "POST", "/auth/login", map[string]string{
		"email":    "Cashier@Test.com",
		"password": "correct-password",
	})
	expectStatus(t, rr, http.StatusOK)

	resp := decodeResponse(t, rr)
	access, _ := resp["access_token"].(string)
	if access == "" {
		t.Fatal("expected access_token")
	}
	if resp["refresh_token"] == "" {
		t.Error("expected refresh_token")
	}

	claims, err := auth.ValidateToken(testSecret, access)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.UserID != "user2" || claims.Role != enum.UserRoleCashier {
		t.Errorf("claims: got %+v", claims)
	}

	user := resp["user"].(map[string]interface{})
	if user["name"] != "Test Cashier" {
		t.Errorf("user name: got %v", user["name"])
	}
}

func TestLogin_Rejected(t *testing.T) {
	router := newAuthRouter(t)

	tests := []struct {
		name string
		body interface{}
		want int
	}{
		{"wrong password", map[string]string{"email": "cashier@test.com", "password": "nope"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "ghost@test.com", "password": "correct-password"}, http.StatusUnauthorized},
		{"missing password", map[string]string{"email": "cashier@test.com"}, http.StatusBadRequest},
		{"malformed body", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, router, "POST", "/auth/login", tt.body)
			expectStatus(t, rr, tt.want)
		})
	}
}

// --- Refresh tests ---

func TestRefresh(t *testing.T) {
	router := newAuthRouter(t)

	refresh, err := auth.GenerateRefreshToken(testSecret, "user2")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	rr := doJSON(t, router, "POST", "/auth/refresh", map[string]string{"refresh_token": refresh})
	expectStatus(t, rr, http.StatusOK)
	if resp := decodeResponse(t, rr); resp["access_token"] == "" {
		t.Error("expected access_token")
	}

	// An access token is not accepted as a refresh token.
	access, _ := auth.GenerateToken(testSecret, "user2", "Test Cashier", enum.UserRoleCashier)
	rr = doJSON(t, router, "POST", "/auth/refresh", map[string]string{"refresh_token": access})
	expectStatus(t, rr, http.StatusUnauthorized)

	unknown, _ := auth.GenerateRefreshToken(testSecret, "user9")
	rr = doJSON(t, router, "POST", "/auth/refresh", map[string]string{"refresh_token": unknown})
	expectStatus(t, rr, http.StatusUnauthorized)
}

// --- Me tests ---

func TestMe(t *testing.T) {
	router := newAuthRouter(t)

	token, _ := auth.GenerateToken(testSecret, "user2", "Test Cashier", enum.UserRoleCashier)
	req := httptest.NewRequest("GET", "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusOK)

	resp := decodeResponse(t, rr)
	if resp["email"] != "cashier@test.com" {
		t.Errorf("email: got %v", resp["email"])
	}

	req = httptest.NewRequest("GET", "/auth/me", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	expectStatus(t, rr, http.StatusUnauthorized)
}
