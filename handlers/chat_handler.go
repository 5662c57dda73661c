package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"campusgo-backend/services"
	"campusgo-backend/ws"
)

type ChatHandler struct {
	registry *ws.Registry
	chatSvc  *services.ChatService
	authSvc  *services.AuthService
}

func NewChatHandler(reg *ws.Registry, c *services.ChatService, a *services.AuthService) *ChatHandler {
	return &ChatHandler{registry: reg, chatSvc: c, authSvc: a}
}

// WS upgrades the connection for a trip chat room. Token and access checks
// run after the upgrade so failures can be reported as WebSocket close codes
// instead of HTTP statuses.
func (h *ChatHandler) WS(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Trip id must be a positive number", http.StatusBadRequest)
		return
	}

	conn, err := ws.Upgrade(w, r)
	if err != nil {
		log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		ws.Reject(conn, ws.CloseMissingToken, "missing token")
		return
	}

	claims, err := h.authSvc.ParseToken(token)
	if err != nil {
		ws.Reject(conn, ws.CloseInvalidToken, "invalid or expired token")
		return
	}

	if err := h.chatSvc.Authorize(tripID, claims.UserID); err != nil {
		switch {
		case errors.Is(err, services.ErrTripNotFound):
			ws.Reject(conn, ws.CloseTripNotFound, "trip not found")
		case errors.Is(err, services.ErrNotAuthorized):
			ws.Reject(conn, ws.CloseNotAuthorized, "not a participant of this trip")
		default:
			ws.Reject(conn, ws.CloseUnexpectedError, "internal error")
		}
		return
	}

	ws.NewClient(h.registry, conn, claims.UserID, claims.Username, tripID, h.chatSvc).Run()
}

func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Trip id must be a positive number", http.StatusBadRequest)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, "Invalid JSON", "Bad request format", http.StatusBadRequest)
		return
	}

	msg, err := h.chatSvc.Post(tripID, userID(r), username(r), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTripNotFound):
			respondWithError(w, "Not found", "Trip not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotAuthorized):
			respondWithError(w, "Forbidden", "Not a participant of this trip", http.StatusForbidden)
		case errors.Is(err, services.ErrPersistence):
			respondWithError(w, "Internal error", "Failed to store message", http.StatusInternalServerError)
		default:
			respondWithError(w, "Invalid message", err.Error(), http.StatusBadRequest)
		}
		return
	}

	respondWithSuccess(w, msg)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(r, "id")
	if !ok {
		respondWithError(w, "Invalid parameter", "Trip id must be a positive number", http.StatusBadRequest)
		return
	}

	skip, limit := pagination(r)
	msgs, err := h.chatSvc.History(tripID, userID(r), skip, limit)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTripNotFound):
			respondWithError(w, "Not found", "Trip not found", http.StatusNotFound)
		case errors.Is(err, services.ErrNotAuthorized):
			respondWithError(w, "Forbidden", "Not a participant of this trip", http.StatusForbidden)
		default:
			respondWithError(w, "Internal error", "Failed to load messages", http.StatusInternalServerError)
		}
		return
	}

	respondWithSuccess(w, msgs)
}
