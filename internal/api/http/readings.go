package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vital-check/vitalcheck-api/internal/audit"
	authmw "github.com/vital-check/vitalcheck-api/internal/auth/middleware"
	"github.com/vital-check/vitalcheck-api/internal/journal"
	"github.com/vital-check/vitalcheck-api/internal/rbac"
	"github.com/vital-check/vitalcheck-api/internal/vitals"
)

// AddReadingHandler records a journal reading for the caller. The response
// echoes the stored reading plus its clinical category where one applies.
func AddReadingHandler(store journal.Store, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reading journal.Reading
		if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		reading.UserID = authmw.SubjectFromContext(r.Context())
		saved, err := store.Add(r.Context(), reading)
		if err != nil {
			httpError(w, err)
			return
		}
		if events != nil {
			data, _ := json.Marshal(map[string]interface{}{"kind": saved.Kind})
			_ = events.Append(r.Context(), audit.TypeReadingRecorded, saved.ID, string(data))
		}
		writeJSON(w, annotate(saved))
	}
}

func ListReadingsHandler(store journal.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		userID := r.URL.Query().Get("user_id")
		if userID == "" || !rbac.CanViewAll(role, "reading") {
			userID = sub
		}
		kind := journal.Kind(r.URL.Query().Get("kind"))
		limit := parseIntDefault(r.URL.Query().Get("limit"), 100)
		list, err := store.List(r.Context(), userID, kind, limit)
		if err != nil {
			httpError(w, err)
			return
		}
		out := make([]annotatedReading, 0, len(list))
		for _, reading := range list {
			out = append(out, annotate(reading))
		}
		writeJSON(w, out)
	}
}

func DeleteReadingHandler(store journal.Store, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "readingID")
		sub := authmw.SubjectFromContext(r.Context())
		if err := store.Delete(r.Context(), id, sub); err != nil {
			httpError(w, err)
			return
		}
		if events != nil {
			_ = events.Append(r.Context(), audit.TypeReadingDeleted, id, "{}")
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// HealthScoreHandler computes the caller's health score ring from their
// journal: cadence, latest-reading bands, blood pressure and glucose.
func HealthScoreHandler(store journal.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		in, err := journal.BuildRingInput(r.Context(), store, sub)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, vitals.ComputeRing(in))
	}
}

type annotatedReading struct {
	journal.Reading
	Category string `json:"category,omitempty"`
}

func annotate(r journal.Reading) annotatedReading {
	out := annotatedReading{Reading: r}
	switch r.Kind {
	case journal.KindBloodPressure:
		out.Category = string(vitals.ClassifyBloodPressure(r.Systolic, r.Diastolic))
	case journal.KindGlucose:
		out.Category = string(vitals.ClassifyGlucose(r.Value, vitals.GlucoseContext(r.Context)))
	case journal.KindOxygen:
		out.Category = string(vitals.ClassifyOxygen(r.Value))
	}
	return out
}
