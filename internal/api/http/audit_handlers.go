package http

import (
	"net/http"

	"github.com/vital-check/vitalcheck-api/internal/audit"
)

// RecentEventsHandler exposes the audit trail tail (admin only).
func RecentEventsHandler(events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		list, err := events.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if list == nil {
			list = []audit.Event{}
		}
		writeJSON(w, list)
	}
}
