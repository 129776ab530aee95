package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kiwari-pos/floor/internal/auth"
	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/middleware"
)

// StaffDirectory looks up sign-in accounts.
// Satisfied by *auth.Directory; narrow interface for testability.
type StaffDirectory interface {
	ByEmail(email string) (auth.Account, bool)
	ByID(id string) (auth.Account, bool)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	staff     StaffDirectory
	jwtSecret string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(staff StaffDirectory, jwtSecret string) *AuthHandler {
	return &AuthHandler{staff: staff, jwtSecret: jwtSecret}
}

// RegisterRoutes registers the public auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/refresh", h.Refresh)
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

type userResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Email string        `json:"email"`
	Role  enum.UserRole `json:"role"`
}

// --- Handlers ---

// Login handles email + password authentication.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	account, ok := h.staff.ByEmail(req.Email)
	if !ok || !account.CheckPassword(req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.respondWithTokens(w, account)
}

// Refresh exchanges a valid refresh token for a new access + refresh token pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	userID, err := auth.ValidateRefreshToken(h.jwtSecret, req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	account, ok := h.staff.ByID(userID)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	h.respondWithTokens(w, account)
}

// Me returns the caller's identity. Mounted behind Authenticate.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	account, ok := h.staff.ByID(claims.UserID)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(account))
}

// --- Helpers ---

func (h *AuthHandler) respondWithTokens(w http.ResponseWriter, account auth.Account) {
	accessToken, err := auth.GenerateToken(h.jwtSecret, account.ID, account.Name, account.Role)
	if err != nil {
		log.Printf("ERROR: generate access token: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	refreshToken, err := auth.GenerateRefreshToken(h.jwtSecret, account.ID)
	if err != nil {
		log.Printf("ERROR: generate refresh token: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserResponse(account),
	})
}

func toUserResponse(a auth.Account) userResponse {
	return userResponse{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}
