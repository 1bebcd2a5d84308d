package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vital-check/vitalcheck-api/internal/assessment"
	authmw "github.com/vital-check/vitalcheck-api/internal/auth/middleware"
	"github.com/vital-check/vitalcheck-api/internal/rbac"
	"github.com/vital-check/vitalcheck-api/internal/session"
)

func testCatalog() session.Catalog {
	q := assessment.Questionnaire{
		ID:    "demo",
		Title: "Demo",
		Questions: []assessment.Question{
			{ID: 1, Title: "When?", Type: assessment.SingleChoice, Options: []assessment.Option{
				{Text: "recent", Score: 10},
				{Text: "a while ago", Score: 5},
			}},
			{ID: 2, Title: "Which apply?", Type: assessment.MultipleChoice, MaxScore: 10, Options: []assessment.Option{
				{Text: "a", Score: 6},
				{Text: "b", Score: 6},
			}},
		},
		Tiers: assessment.ThresholdTable{
			{MinScore: 15, Tier: "high"},
			{MinScore: 0, Tier: "low"},
		},
		TierTitles:      map[assessment.Tier]string{"high": "High", "low": "Low"},
		Recommendations: map[assessment.Tier][]string{"high": {"see a clinician"}, "low": {"retest later"}},
	}
	return func(id string) (assessment.Questionnaire, bool) {
		if id == q.ID {
			return q, true
		}
		return assessment.Questionnaire{}, false
	}
}

// asUser stamps every request with a fixed subject and role, standing in
// for the JWT middleware.
func asUser(sub, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := authmw.WithSubject(r.Context(), sub)
			ctx = rbac.WithRole(ctx, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func testRouter(store session.Store, sub string) http.Handler {
	r := chi.NewRouter()
	r.Use(asUser(sub, "user"))
	r.Post("/sessions", StartSessionHandler(store))
	r.Get("/sessions/{sessionID}", GetSessionHandler(store))
	r.Post("/sessions/{sessionID}/answers", AnswerHandler(store))
	r.Post("/sessions/{sessionID}/advance", AdvanceHandler(store))
	r.Post("/sessions/{sessionID}/submit", SubmitSessionHandler(store, nil))
	r.Get("/results/{resultID}", GetResultHandler(store))
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSessionFlowOverHTTP(t *testing.T) {
	store := session.NewInMemoryStore(testCatalog())
	h := testRouter(store, "u1")

	rr := doJSON(t, h, "POST", "/sessions", map[string]string{"questionnaire_id": "demo"})
	if rr.Code != http.StatusOK {
		t.Fatalf("start: %d %s", rr.Code, rr.Body.String())
	}
	var s session.Session
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	base := "/sessions/" + s.ID

	// advancing off the intro lands on the first question
	rr = doJSON(t, h, "POST", base+"/advance", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("advance: %d", rr.Code)
	}

	// advancing an unanswered question is a 400
	rr = doJSON(t, h, "POST", base+"/advance", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("advance unanswered: got %d, want 400", rr.Code)
	}

	rr = doJSON(t, h, "POST", base+"/answers", map[string]int{"question_id": 1, "option": 0})
	if rr.Code != http.StatusOK {
		t.Fatalf("answer q1: %d %s", rr.Code, rr.Body.String())
	}
	doJSON(t, h, "POST", base+"/advance", nil)

	// multiple choice: both options, second capped by MaxScore
	doJSON(t, h, "POST", base+"/answers", map[string]int{"question_id": 2, "option": 0})
	doJSON(t, h, "POST", base+"/answers", map[string]int{"question_id": 2, "option": 1})
	rr = doJSON(t, h, "POST", base+"/advance", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("final advance: %d %s", rr.Code, rr.Body.String())
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	if s.Phase != session.PhaseResult || s.ResultID == "" {
		t.Fatalf("expected result phase with result id, got %+v", s)
	}

	rr = doJSON(t, h, "POST", base+"/submit", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rr.Code, rr.Body.String())
	}
	var rec session.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.TotalScore != 20 { // 10 + (6+6 capped to 10)
		t.Fatalf("total = %d, want 20", rec.TotalScore)
	}
	if rec.Tier != "high" || rec.TierTitle != "High" {
		t.Fatalf("tier = %q / %q", rec.Tier, rec.TierTitle)
	}

	// answering after completion conflicts
	rr = doJSON(t, h, "POST", base+"/answers", map[string]int{"question_id": 1, "option": 1})
	if rr.Code != http.StatusConflict {
		t.Fatalf("answer after submit: got %d, want 409", rr.Code)
	}

	rr = doJSON(t, h, "GET", "/results/"+rec.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get result: %d", rr.Code)
	}
}

func TestSessionOwnershipHidden(t *testing.T) {
	store := session.NewInMemoryStore(testCatalog())

	owner := testRouter(store, "u1")
	rr := doJSON(t, owner, "POST", "/sessions", map[string]string{"questionnaire_id": "demo"})
	var s session.Session
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}

	// another user sees a 404, not a 403
	other := testRouter(store, "u2")
	rr = doJSON(t, other, "GET", "/sessions/"+s.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("foreign session: got %d, want 404", rr.Code)
	}
}

func TestStartUnknownQuestionnaire(t *testing.T) {
	store := session.NewInMemoryStore(testCatalog())
	h := testRouter(store, "u1")

	rr := doJSON(t, h, "POST", "/sessions", map[string]string{"questionnaire_id": "nope"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %d, want 404", rr.Code)
	}
}

func TestResultForbiddenForOtherUser(t *testing.T) {
	store := session.NewInMemoryStore(testCatalog())
	h := testRouter(store, "u1")

	rr := doJSON(t, h, "POST", "/sessions", map[string]string{"questionnaire_id": "demo"})
	var s session.Session
	if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}
	base := "/sessions/" + s.ID
	for _, qid := range []int{1, 2} {
		doJSON(t, h, "POST", base+"/answers", map[string]int{"question_id": qid, "option": 0})
		doJSON(t, h, "POST", base+"/advance", nil)
	}
	rr = doJSON(t, h, "POST", base+"/submit", nil)
	var rec session.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}

	other := testRouter(store, "u2")
	rr = doJSON(t, other, "GET", "/results/"+rec.ID, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("foreign result: got %d, want 403", rr.Code)
	}
}
