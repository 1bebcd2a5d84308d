package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vital-check/vitalcheck-api/internal/assessment/catalog"
)

func ListQuestionnairesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, catalog.List())
	}
}

// GetQuestionnaireHandler serves questionnaire content with option scores
// and tier tables stripped; clients select by option index only.
func GetQuestionnaireHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionnaireID")
		q, ok := catalog.Get(id)
		if !ok {
			http.Error(w, "questionnaire not found", http.StatusNotFound)
			return
		}
		writeJSON(w, catalog.Public(q))
	}
}
