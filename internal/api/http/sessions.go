package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vital-check/vitalcheck-api/internal/audit"
	authmw "github.com/vital-check/vitalcheck-api/internal/auth/middleware"
	"github.com/vital-check/vitalcheck-api/internal/rbac"
	"github.com/vital-check/vitalcheck-api/internal/session"
)

func StartSessionHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuestionnaireID string `json:"questionnaire_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.QuestionnaireID == "" {
			http.Error(w, "questionnaire_id required", http.StatusBadRequest)
			return
		}
		s, err := store.Start(req.QuestionnaireID, authmw.SubjectFromContext(r.Context()))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, s)
	}
}

func GetSessionHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := ownedSession(r, store)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, s)
	}
}

// AnswerHandler applies one selection: replace for single-choice questions,
// toggle for multiple-choice.
func AnswerHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ownedSession(r, store); err != nil {
			httpError(w, err)
			return
		}
		var req struct {
			QuestionID int `json:"question_id"`
			Option     int `json:"option"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		s, err := store.Answer(chi.URLParam(r, "sessionID"), req.QuestionID, req.Option)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, s)
	}
}

func AdvanceHandler(store session.Store) http.HandlerFunc {
	return sessionTransition(store, session.Store.Advance)
}

func BackHandler(store session.Store) http.HandlerFunc {
	return sessionTransition(store, session.Store.Back)
}

func RetakeHandler(store session.Store) http.HandlerFunc {
	return sessionTransition(store, session.Store.Retake)
}

func sessionTransition(store session.Store, op func(session.Store, string) (session.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ownedSession(r, store); err != nil {
			httpError(w, err)
			return
		}
		s, err := op(store, chi.URLParam(r, "sessionID"))
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, s)
	}
}

func SubmitSessionHandler(store session.Store, events *audit.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := ownedSession(r, store); err != nil {
			httpError(w, err)
			return
		}
		rec, err := store.Submit(chi.URLParam(r, "sessionID"))
		if err != nil {
			httpError(w, err)
			return
		}
		if events != nil {
			data, _ := json.Marshal(map[string]interface{}{
				"questionnaire_id": rec.QuestionnaireID,
				"total_score":      rec.TotalScore,
				"tier":             rec.Tier,
			})
			_ = events.Append(r.Context(), audit.TypeAssessmentCompleted, rec.ID, string(data))
		}
		writeJSON(w, rec)
	}
}

func GetResultHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.GetResult(chi.URLParam(r, "resultID"))
		if err != nil {
			httpError(w, err)
			return
		}
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		if rec.UserID != sub && !rbac.CanViewAll(role, "result") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, rec)
	}
}

// ListResultsHandler returns the caller's result history; callers with
// result:view-all may pass ?user_id= to read another user's.
func ListResultsHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := authmw.SubjectFromContext(r.Context())
		role := rbac.RoleFromContext(r.Context())
		userID := r.URL.Query().Get("user_id")
		if userID == "" || !rbac.CanViewAll(role, "result") {
			userID = sub
		}
		list, err := store.ListResults(userID)
		if err != nil {
			httpError(w, err)
			return
		}
		if list == nil {
			list = []session.Record{}
		}
		writeJSON(w, list)
	}
}

// ownedSession loads the session and enforces that the caller owns it.
func ownedSession(r *http.Request, store session.Store) (session.Session, error) {
	s, err := store.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		return session.Session{}, err
	}
	if s.UserID != authmw.SubjectFromContext(r.Context()) {
		return session.Session{}, session.ErrNotFound // hide existence from non-owners
	}
	return s, nil
}
