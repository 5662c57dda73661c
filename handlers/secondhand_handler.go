package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusgo-backend/repository"
	"campusgo-backend/services"
)

type SecondHandHandler struct {
	svc *services.SecondHandService
}

func NewSecondHandHandler(s *services.SecondHandService) *SecondHandHandler {
	return &SecondHandHandler{svc: s}
}

type secondHandRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
}

func (h *SecondHandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req secondHandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	item, err := h.svc.Create(userID(r), req.Title, req.Description, req.Price, req.Category, req.Condition)
	if err != nil {
		respondWithError(w, "Item creation failed", err.Error(), http.StatusBadRequest)
		return
	}
	respondWithSuccess(w, item)
}

func (h *SecondHandHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := repository.SecondHandFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}

	page, err := h.svc.List(filter, skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list items", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, page)
}

func (h *SecondHandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Item id must be a positive number", http.StatusBadRequest)
		return
	}

	item, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			respondWithError(w, "Not found", "Item not found", http.StatusNotFound)
			return
		}
		respondWithError(w, "Internal error", "Failed to load item", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, item)
}

func (h *SecondHandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Item id must be a positive number", http.StatusBadRequest)
		return
	}

	var req secondHandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	item, err := h.svc.Update(id, userID(r), req.Title, req.Description, req.Price, req.Category, req.Condition)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			respondWithError(w, "Not found", "Item not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotOwner):
			respondWithError(w, "Forbidden", "Only the owner can update this item", http.StatusForbidden)
		default:
			respondWithError(w, "Update failed", err.Error(), http.StatusBadRequest)
		}
		return
	}
	respondWithSuccess(w, item)
}

func (h *SecondHandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Item id must be a positive number", http.StatusBadRequest)
		return
	}

	if err := h.svc.Deactivate(id, userID(r)); err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			respondWithError(w, "Not found", "Item not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotOwner):
			respondWithError(w, "Forbidden", "Only the owner can delete this item", http.StatusForbidden)
		default:
			respondWithError(w, "Internal error", "Failed to delete item", http.StatusInternalServerError)
		}
		return
	}
	respondWithSuccess(w, map[string]string{"message": "Item deleted"})
}

func (h *SecondHandHandler) Mine(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	items, err := h.svc.ListByUser(userID(r), skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list items", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, items)
}
