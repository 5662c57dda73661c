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
	bookingCacheTTL     = 10 * time.Minute
	bookingListCacheTTL = 5 * time.Minute
)

type BookingHandler struct {
	svc   *services.BookingService
	cache *cache.Cache
}

func NewBookingHandler(s *services.BookingService, c *cache.Cache) *BookingHandler {
	return &BookingHandler{svc: s, cache: c}
}

func bookingKey(id, userID int) string {
	return fmt.Sprintf("booking_%d_%d", id, userID)
}

// bookingListKey covers only the default page so booking writes can
// invalidate it by exact key.
func bookingListKey(userID int) string {
	return fmt.Sprintf("user_bookings_%d", userID)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TripID int `json:"trip_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TripID <= 0 {
		respondWithError(w, "Invalid JSON", "trip_id is required", http.StatusBadRequest)
		return
	}

	booking, err := h.svc.Create(req.TripID, userID(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTripNotFound):
			respondWithError(w, "Not found", "Trip not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNoSeats):
			respondWithError(w, "No seats", "No seats available on this trip", http.StatusConflict)
		case errors.Is(err, services.ErrAlreadyBooked):
			respondWithError(w, "Already booked", "You already booked this trip", http.StatusConflict)
		default:
			respondWithError(w, "Internal error", "Failed to create booking", http.StatusInternalServerError)
		}
		return
	}

	h.cache.Delete(r.Context(),
		fmt.Sprintf("trip_%d", req.TripID),
		tripListCacheKey,
		bookingListKey(userID(r)),
	)
	respondWithSuccess(w, booking)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Booking id must be a positive number", http.StatusBadRequest)
		return
	}

	uid := userID(r)
	key := bookingKey(id, uid)
	var cached models.Booking
	if h.cache.Get(r.Context(), key, &cached) {
		respondWithSuccess(w, cached)
		return
	}

	booking, err := h.svc.Get(id, uid)
	if err != nil {
		if errors.Is(err, services.ErrBookingMissing) {
			respondWithError(w, "Not found", "Booking not found", http.StatusNotFound)
			return
		}
		respondWithError(w, "Internal error", "Failed to load booking", http.StatusInternalServerError)
		return
	}

	h.cache.Set(r.Context(), key, booking, bookingCacheTTL)
	respondWithSuccess(w, booking)
}

func (h *BookingHandler) Mine(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	uid := userID(r)

	defaultPage := skip == 0 && limit == defaultPageLimit
	if defaultPage {
		var cached []models.Booking
		if h.cache.Get(r.Context(), bookingListKey(uid), &cached) {
			respondWithSuccess(w, cached)
			return
		}
	}

	bookings, err := h.svc.ListByUser(uid, skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list bookings", http.StatusInternalServerError)
		return
	}

	if defaultPage {
		h.cache.Set(r.Context(), bookingListKey(uid), bookings, bookingListCacheTTL)
	}
	respondWithSuccess(w, bookings)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Booking id must be a positive number", http.StatusBadRequest)
		return
	}

	uid := userID(r)
	booking, err := h.svc.Cancel(id, uid)
	if err != nil {
		if errors.Is(err, services.ErrBookingMissing) {
			respondWithError(w, "Not found", "Booking not found", http.StatusNotFound)
			return
		}
		respondWithError(w, "Internal error", "Failed to cancel booking", http.StatusInternalServerError)
		return
	}

	h.cache.Delete(r.Context(),
		bookingKey(id, uid),
		bookingListKey(uid),
		fmt.Sprintf("trip_%d", booking.TripID),
		tripListCacheKey,
	)
	respondWithSuccess(w, booking)
}
