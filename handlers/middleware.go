package handlers

import (
	"context"
	"net/http"
	"strings"

	"campusgo-backend/services"
)

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxUsername
	ctxAdminID
)

// bearerToken pulls the token from the Authorization header, accepting both
// "Bearer <token>" and a bare token.
func bearerToken(r *http.Request) string {
	raw := r.Header.Get("Authorization")
	if raw == "" {
		return ""
	}
	return strings.TrimPrefix(raw, "Bearer ")
}

func RequireAuth(auth *services.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondWithError(w, "Unauthorized", "Missing Authorization header", http.StatusUnauthorized)
			return
		}
		claims, err := auth.ParseToken(token)
		if err != nil {
			respondWithError(w, "Unauthorized", "Invalid or expired token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxUsername, claims.Username)
		next(w, r.WithContext(ctx))
	}
}

func RequireAdmin(admin *services.AdminService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondWithError(w, "Unauthorized", "Missing Authorization header", http.StatusUnauthorized)
			return
		}
		claims, err := admin.ParseToken(token)
		if err != nil {
			respondWithError(w, "Unauthorized", "Invalid or expired admin token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), ctxAdminID, claims.UserID)
		next(w, r.WithContext(ctx))
	}
}

func userID(r *http.Request) int {
	id, _ := r.Context().Value(ctxUserID).(int)
	return id
}

func username(r *http.Request) string {
	name, _ := r.Context().Value(ctxUsername).(string)
	return name
}

func adminID(r *http.Request) int {
	id, _ := r.Context().Value(ctxAdminID).(int)
	return id
}
