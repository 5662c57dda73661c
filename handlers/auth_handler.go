package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusgo-backend/services"
)

type AuthHandler struct {
	svc *services.AuthService
}

func NewAuthHandler(s *services.AuthService) *AuthHandler { return &AuthHandler{svc: s} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondWithError(w, "Missing fields", "Username, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.svc.Register(req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(w, "Registration failed", err.Error(), http.StatusBadRequest)
		return
	}

	respondWithSuccess(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		respondWithError(w, "Missing fields", "Username and password are required", http.StatusBadRequest)
		return
	}

	pair, user, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondWithError(w, "Authentication failed", "Incorrect username or password", http.StatusUnauthorized)
			return
		}
		respondWithError(w, "Internal error", "Login failed", http.StatusInternalServerError)
		return
	}

	respondWithSuccess(w, map[string]interface{}{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"token_type":    pair.TokenType,
		"user":          user,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		respondWithError(w, "Invalid JSON", "refresh_token is required", http.StatusBadRequest)
		return
	}

	access, err := h.svc.Refresh(req.RefreshToken)
	if err != nil {
		respondWithError(w, "Unauthorized", "Invalid or expired refresh token", http.StatusUnauthorized)
		return
	}

	respondWithSuccess(w, map[string]interface{}{
		"access_token": access,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetUser(userID(r))
	if err != nil {
		respondWithError(w, "Not found", "User not found", http.StatusNotFound)
		return
	}
	respondWithSuccess(w, user)
}

func (h *AuthHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "User id must be a positive number", http.StatusBadRequest)
		return
	}

	user, err := h.svc.GetUser(id)
	if err != nil {
		respondWithError(w, "Not found", "User not found", http.StatusNotFound)
		return
	}
	respondWithSuccess(w, user)
}
