package session

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

func testCatalog() Catalog {
	q := assessment.Questionnaire{
		ID: "demo",
		Questions: []assessment.Question{
			{
				ID:   1,
				Type: assessment.SingleChoice,
				Options: []assessment.Option{
					{Text: "a", Score: 10}, {Text: "b", Score: 10}, {Text: "c", Score: 10},
				},
			},
			{
				ID:       2,
				Type:     assessment.MultipleChoice,
				MaxScore: 10,
				Options: []assessment.Option{
					{Text: "x", Score: 5}, {Text: "y", Score: 8},
				},
			},
		},
		Tiers: assessment.ThresholdTable{
			{MinScore: 20, Tier: "moderate"},
			{MinScore: 0, Tier: "low"},
		},
		Recommendations: map[assessment.Tier][]string{
			"low":      {"all good"},
			"moderate": {"get tested"},
		},
		TimeframeFor: 1,
		Timeframes:   []assessment.Timeframe{"t0", "t1", "t2"},
		RetestOffsets: map[assessment.Timeframe][]int{
			"t2": {28, 90},
		},
	}
	return func(id string) (assessment.Questionnaire, bool) {
		if id == q.ID {
			return q, true
		}
		return assessment.Questionnaire{}, false
	}
}

func TestStart_UnknownQuestionnaire(t *testing.T) {
	st := NewInMemoryStore(testCatalog())
	if _, err := st.Start("missing", "u1"); !errors.Is(err, ErrUnknownCatalog) {
		t.Fatalf("err = %v, want ErrUnknownCatalog", err)
	}
}

func TestFullFlow(t *testing.T) {
	st := NewInMemoryStore(testCatalog())
	s, err := st.Start("demo", "u1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if s.Phase != PhaseIntro {
		t.Fatalf("phase = %q, want intro", s.Phase)
	}

	// Intro -> first question.
	s, err = st.Advance(s.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.Phase != PhaseQuestion || s.QuestionIndex != 0 {
		t.Fatalf("phase=%q idx=%d after intro advance", s.Phase, s.QuestionIndex)
	}

	// Cannot advance past an unanswered question.
	if _, err := st.Advance(s.ID); !errors.Is(err, ErrNotAnswered) {
		t.Fatalf("err = %v, want ErrNotAnswered", err)
	}

	// Single choice: selecting replaces.
	if _, err := st.Answer(s.ID, 1, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	s, err = st.Answer(s.ID, 1, 2)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if got := s.Answers.Selected(1); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("q1 selection = %v, want [2]", got)
	}

	s, err = st.Advance(s.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.QuestionIndex != 1 {
		t.Fatalf("idx = %d, want 1", s.QuestionIndex)
	}

	// Back is bounded.
	s, _ = st.Back(s.ID)
	if s.QuestionIndex != 0 {
		t.Fatalf("idx after back = %d, want 0", s.QuestionIndex)
	}
	s, _ = st.Back(s.ID)
	if s.QuestionIndex != 0 {
		t.Fatalf("idx after second back = %d, want 0", s.QuestionIndex)
	}
	s, _ = st.Advance(s.ID)

	// Multi choice toggles.
	if _, err := st.Answer(s.ID, 2, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if _, err := st.Answer(s.ID, 2, 1); err != nil {
		t.Fatalf("answer: %v", err)
	}

	// Advancing past the last question finalizes.
	s, err = st.Advance(s.ID)
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if s.Phase != PhaseResult || s.ResultID == "" {
		t.Fatalf("phase=%q result=%q after final advance", s.Phase, s.ResultID)
	}

	rec, err := st.GetResult(s.ResultID)
	if err != nil {
		t.Fatalf("get result: %v", err)
	}
	// q1 index 2 = 10, q2 = 5+8 capped at 10.
	if rec.TotalScore != 20 {
		t.Fatalf("total = %d, want 20", rec.TotalScore)
	}
	if rec.Tier != "moderate" {
		t.Fatalf("tier = %q, want moderate", rec.Tier)
	}
	if rec.Timeframe != "t2" {
		t.Fatalf("timeframe = %q, want t2", rec.Timeframe)
	}
	if !reflect.DeepEqual(rec.RetestOffsets, []int{28, 90}) {
		t.Fatalf("retest offsets = %v", rec.RetestOffsets)
	}
	if !reflect.DeepEqual(rec.Snapshot["1"], []int{2}) {
		t.Fatalf("snapshot q1 = %v, want [2]", rec.Snapshot["1"])
	}
}

func TestSubmit_Idempotent(t *testing.T) {
	st := NewInMemoryStore(testCatalog())
	s, _ := st.Start("demo", "u1")
	_, _ = st.Answer(s.ID, 1, 1)

	first, err := st.Submit(s.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// Answers cannot change after completion...
	if _, err := st.Answer(s.ID, 1, 0); !errors.Is(err, ErrCompleted) {
		t.Fatalf("err = %v, want ErrCompleted", err)
	}
	// ...and a second submit returns the stored record unchanged.
	second, err := st.Submit(s.ID)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resubmit changed the record:\n%+v\n%+v", first, second)
	}
}

func TestSubmit_PartialAnswerSet(t *testing.T) {
	st := NewInMemoryStore(testCatalog())
	s, _ := st.Start("demo", "u1")
	// Submit with nothing answered: engine leniency gives 0 / lowest tier.
	rec, err := st.Submit(s.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.TotalScore != 0 || rec.Tier != "low" {
		t.Fatalf("got total=%d tier=%q, want 0/low", rec.TotalScore, rec.Tier)
	}
	if rec.Timeframe != "" || rec.RetestOffsets != nil {
		t.Fatalf("unexpected secondary answer on empty submit")
	}
}

func TestRetake_KeepsOldResult(t *testing.T) {
	st := NewInMemoryStore(testCatalog())
	s, _ := st.Start("demo", "u7")
	_, _ = st.Answer(s.ID, 1, 2)
	first, _ := st.Submit(s.ID)

	s, err := st.Retake(s.ID)
	if err != nil {
		t.Fatalf("retake: %v", err)
	}
	if s.Phase != PhaseIntro || len(s.Answers) != 0 || s.ResultID != "" {
		t.Fatalf("retake did not reset: %+v", s)
	}

	// The prior result survives, immutable.
	old, err := st.GetResult(first.ID)
	if err != nil {
		t.Fatalf("old result gone: %v", err)
	}
	if !reflect.DeepEqual(old, first) {
		t.Fatalf("old result changed")
	}

	_, _ = st.Answer(s.ID, 1, 0)
	second, _ := st.Submit(s.ID)
	if second.ID == first.ID {
		t.Fatalf("resubmission reused the old result id")
	}

	list, _ := st.ListResults("u7")
	if len(list) != 2 {
		t.Fatalf("ListResults returned %d records, want 2", len(list))
	}
}

func TestAnswer_UnknownQuestion(t *testing.T) {
	st := NewInMemoryStore(testCatalog())
	s, _ := st.Start("demo", "u1")
	if _, err := st.Answer(s.ID, 99, 0); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("err = %v, want ErrUnknownQuestion", err)
	}
}
