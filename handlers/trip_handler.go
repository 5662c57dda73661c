package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"campusgo-backend/cache"
	"campusgo-backend/models"
	"campusgo-backend/services"
)

const (
	tripCacheTTL     = 10 * time.Minute
	tripListCacheTTL = 5 * time.Minute
	tripListCacheKey = "trips_all"
)

type TripHandler struct {
	svc   *services.TripService
	cache *cache.Cache
}

func NewTripHandler(s *services.TripService, c *cache.Cache) *TripHandler {
	return &TripHandler{svc: s, cache: c}
}

func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Departure      string    `json:"departure"`
		Destination    string    `json:"destination"`
		DepartureTime  time.Time `json:"departure_time"`
		Price          float64   `json:"price_per_person"`
		AvailableSeats int       `json:"available_seats"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	trip, err := h.svc.Create(userID(r), req.Departure, req.Destination, req.DepartureTime, req.Price, req.AvailableSeats)
	if err != nil {
		respondWithError(w, "Trip creation failed", err.Error(), http.StatusBadRequest)
		return
	}

	h.cache.Delete(r.Context(), tripListCacheKey)
	respondWithSuccess(w, trip)
}

func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Trip id must be a positive number", http.StatusBadRequest)
		return
	}

	key := fmt.Sprintf("trip_%d", id)
	var cached models.Trip
	if h.cache.Get(r.Context(), key, &cached) {
		respondWithSuccess(w, cached)
		return
	}

	trip, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrTripNotFound) {
			respondWithError(w, "Not found", "Trip not found", http.StatusNotFound)
			return
		}
		respondWithError(w, "Internal error", "Failed to load trip", http.StatusInternalServerError)
		return
	}

	h.cache.Set(r.Context(), key, trip, tripCacheTTL)
	respondWithSuccess(w, trip)
}

func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)

	if skip == 0 {
		var cached services.TripPage
		if h.cache.Get(r.Context(), tripListCacheKey, &cached) && cached.Limit == limit {
			respondWithSuccess(w, cached)
			return
		}
	}

	page, err := h.svc.ListAll(skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list trips", http.StatusInternalServerError)
		return
	}

	if skip == 0 {
		h.cache.Set(r.Context(), tripListCacheKey, page, tripListCacheTTL)
	}
	respondWithSuccess(w, page)
}

func (h *TripHandler) Mine(w http.ResponseWriter, r *http.Request) {
	trips, err := h.svc.ListByOwner(userID(r))
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list trips", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, trips)
}
