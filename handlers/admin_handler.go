package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"campusgo-backend/cache"
	"campusgo-backend/repository"
	"campusgo-backend/services"
)

const (
	statsCacheTTL  = 10 * time.Minute
	trendsCacheTTL = 5 * time.Minute
)

type AdminHandler struct {
	svc   *services.AdminService
	cache *cache.Cache
}

func NewAdminHandler(s *services.AdminService, c *cache.Cache) *AdminHandler {
	return &AdminHandler{svc: s, cache: c}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
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

	token, admin, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			respondWithError(w, "Authentication failed", "Incorrect username or password", http.StatusUnauthorized)
		case errors.Is(err, services.ErrAdminDisabled):
			respondWithError(w, "Forbidden", "Admin account is disabled", http.StatusForbidden)
		default:
			respondWithError(w, "Internal error", "Login failed", http.StatusInternalServerError)
		}
		return
	}

	respondWithSuccess(w, map[string]interface{}{
		"access_token": token,
		"token_type":   "bearer",
		"admin":        admin,
	})
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, err := h.svc.Get(adminID(r))
	if err != nil {
		respondWithError(w, "Not found", "Admin not found", http.StatusNotFound)
		return
	}
	respondWithSuccess(w, admin)
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	users, err := h.svc.ListUsers(skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list users", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, users)
}

func (h *AdminHandler) Trips(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	trips, err := h.svc.ListTrips(skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list trips", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, trips)
}

func (h *AdminHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	bookings, err := h.svc.ListBookings(skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list bookings", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, bookings)
}

func (h *AdminHandler) Items(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	items, err := h.svc.ListItems(skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list items", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, items)
}

func (h *AdminHandler) Errands(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	tasks, err := h.svc.ListErrands(skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, tasks)
}

func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	const key = "admin_stats_overview"
	var cached services.StatsOverview
	if h.cache.Get(r.Context(), key, &cached) {
		respondWithSuccess(w, cached)
		return
	}

	stats, err := h.svc.Overview()
	if err != nil {
		respondWithError(w, "Internal error", "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	h.cache.Set(r.Context(), key, stats, statsCacheTTL)
	respondWithSuccess(w, stats)
}

func (h *AdminHandler) BookingTrends(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	key := fmt.Sprintf("admin_booking_trends_%d", days)

	var cached []repository.DayCount
	if h.cache.Get(r.Context(), key, &cached) {
		respondWithSuccess(w, cached)
		return
	}

	trends, err := h.svc.BookingTrends(days)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to compute booking trends", http.StatusInternalServerError)
		return
	}

	h.cache.Set(r.Context(), key, trends, trendsCacheTTL)
	respondWithSuccess(w, trends)
}

func (h *AdminHandler) UserGrowth(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	key := fmt.Sprintf("admin_user_growth_%d", days)

	var cached []repository.DayCount
	if h.cache.Get(r.Context(), key, &cached) {
		respondWithSuccess(w, cached)
		return
	}

	growth, err := h.svc.UserGrowth(days)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to compute user growth", http.StatusInternalServerError)
		return
	}

	h.cache.Set(r.Context(), key, growth, trendsCacheTTL)
	respondWithSuccess(w, growth)
}
