package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusgo-backend/services"
)

type ReputationHandler struct {
	svc *services.ReputationService
}

func NewReputationHandler(s *services.ReputationService) *ReputationHandler {
	return &ReputationHandler{svc: s}
}

func (h *ReputationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      int    `json:"user_id"`
		ScoreChange int    `json:"score_change"`
		Reason      string `json:"reason"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		respondWithError(w, "Invalid JSON", "user_id and score_change are required", http.StatusBadRequest)
		return
	}

	record, err := h.svc.Apply(req.UserID, req.ScoreChange, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, "Not found", "User not found", http.StatusNotFound)
			return
		}
		respondWithError(w, "Invalid record", err.Error(), http.StatusBadRequest)
		return
	}
	respondWithSuccess(w, record)
}

func (h *ReputationHandler) Score(w http.ResponseWriter, r *http.Request) {
	uid, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "User id must be a positive number", http.StatusBadRequest)
		return
	}

	score, err := h.svc.Score(uid)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondWithError(w, "Not found", "User not found", http.StatusNotFound)
			return
		}
		respondWithError(w, "Internal error", "Failed to load reputation", http.StatusInternalServerError)
		return
	}

	respondWithSuccess(w, map[string]interface{}{
		"user_id":          uid,
		"reputation_score": score,
	})
}

func (h *ReputationHandler) Records(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.Records(userID(r))
	if err != nil {
		respondWithError(w, "Internal error", "Failed to load reputation history", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, records)
}
