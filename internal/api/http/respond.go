package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vital-check/vitalcheck-api/internal/journal"
	"github.com/vital-check/vitalcheck-api/internal/session"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// httpError maps store errors onto status codes; anything unrecognized is a
// 500 with a generic body so internals don't leak.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrResultNotFound),
		errors.Is(err, session.ErrUnknownCatalog),
		errors.Is(err, journal.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, session.ErrUnknownQuestion),
		errors.Is(err, session.ErrNotAnswered),
		errors.Is(err, journal.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, session.ErrCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
