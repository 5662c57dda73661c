package handlers

import (
	"net/http"
	"strconv"
)

func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

const defaultPageLimit = 100

func pagination(r *http.Request) (skip, limit int) {
	return queryInt(r, "skip", 0), queryInt(r, "limit", defaultPageLimit)
}
