package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"campusgo-backend/repository"
	"campusgo-backend/services"
)

type ErrandHandler struct {
	svc *services.ErrandService
}

func NewErrandHandler(s *services.ErrandService) *ErrandHandler {
	return &ErrandHandler{svc: s}
}

type errandRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Reward      float64   `json:"reward"`
	Location    string    `json:"location"`
	Deadline    time.Time `json:"deadline"`
}

func (h *ErrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req errandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	task, err := h.svc.CreateTask(userID(r), req.Title, req.Description, req.Reward, req.Location, req.Deadline)
	if err != nil {
		respondWithError(w, "Task creation failed", err.Error(), http.StatusBadRequest)
		return
	}
	respondWithSuccess(w, task)
}

func (h *ErrandHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	filter := repository.ErrandFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
	}

	page, err := h.svc.ListTasks(filter, skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, page)
}

func (h *ErrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Task id must be a positive number", http.StatusBadRequest)
		return
	}

	task, err := h.svc.GetTask(id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			respondWithError(w, "Not found", "Task not found", http.StatusNotFound)
			return
		}
		respondWithError(w, "Internal error", "Failed to load task", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, task)
}

func (h *ErrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Task id must be a positive number", http.StatusBadRequest)
		return
	}

	var req errandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	task, err := h.svc.UpdateTask(id, userID(r), req.Title, req.Description, req.Reward, req.Location, req.Deadline)
	if err != nil {
		h.taskError(w, err, "Update failed")
		return
	}
	respondWithSuccess(w, task)
}

func (h *ErrandHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Task id must be a positive number", http.StatusBadRequest)
		return
	}

	if err := h.svc.CancelTask(id, userID(r)); err != nil {
		h.taskError(w, err, "Cancel failed")
		return
	}
	respondWithSuccess(w, map[string]string{"message": "Task cancelled"})
}

func (h *ErrandHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Task id must be a positive number", http.StatusBadRequest)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	resp, err := h.svc.Respond(id, userID(r), req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			respondWithError(w, "Not found", "Task not found", http.StatusNotFound)
		case errors.Is(err, services.ErrTaskNotOpen):
			respondWithError(w, "Task closed", "Task is no longer accepting responses", http.StatusConflict)
		case errors.Is(err, services.ErrAlreadyResponded):
			respondWithError(w, "Duplicate response", "You already responded to this task", http.StatusConflict)
		default:
			respondWithError(w, "Response failed", err.Error(), http.StatusBadRequest)
		}
		return
	}
	respondWithSuccess(w, resp)
}

func (h *ErrandHandler) Responses(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Task id must be a positive number", http.StatusBadRequest)
		return
	}

	resps, err := h.svc.ListResponses(id, userID(r))
	if err != nil {
		h.taskError(w, err, "Failed to load responses")
		return
	}
	respondWithSuccess(w, resps)
}

func (h *ErrandHandler) Accept(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Task id must be a positive number", http.StatusBadRequest)
		return
	}
	responseID, ok := pathID(r, "responseId")
	if !ok {
		respondWithError(w, "Invalid parameter", "Response id must be a positive number", http.StatusBadRequest)
		return
	}

	if err := h.svc.Accept(taskID, responseID, userID(r)); err != nil {
		if errors.Is(err, services.ErrResponseMissing) {
			respondWithError(w, "Not found", "Response not found", http.StatusNotFound)
			return
		}
		h.taskError(w, err, "Accept failed")
		return
	}
	respondWithSuccess(w, map[string]string{"message": "Response accepted"})
}

func (h *ErrandHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Task id must be a positive number", http.StatusBadRequest)
		return
	}

	if err := h.svc.Complete(id, userID(r)); err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			respondWithError(w, "Not found", "Task not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotAssignee):
			respondWithError(w, "Forbidden", "Only the assignee can complete this task", http.StatusForbidden)
		case errors.Is(err, services.ErrTaskNotOpen):
			respondWithError(w, "Invalid state", "Task is not in progress", http.StatusConflict)
		default:
			respondWithError(w, "Internal error", "Failed to complete task", http.StatusInternalServerError)
		}
		return
	}
	respondWithSuccess(w, map[string]string{"message": "Task completed"})
}

func (h *ErrandHandler) Mine(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	tasks, err := h.svc.TasksByOwner(userID(r), skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, tasks)
}

func (h *ErrandHandler) Assigned(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r)
	tasks, err := h.svc.TasksByAssignee(userID(r), skip, limit)
	if err != nil {
		respondWithError(w, "Internal error", "Failed to list tasks", http.StatusInternalServerError)
		return
	}
	respondWithSuccess(w, tasks)
}

func (h *ErrandHandler) taskError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		respondWithError(w, "Not found", "Task not found", http.StatusNotFound)
	case errors.Is(err, services.ErrTaskNotOpen):
		respondWithError(w, "Invalid state", "Task is not open", http.StatusConflict)
	default:
		respondWithError(w, fallback, err.Error(), http.StatusBadRequest)
	}
}
