package catalog

import (
	"testing"

	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

func TestRegistry(t *testing.T) {
	if _, ok := Get("hiv-risk"); !ok {
		t.Fatalf("hiv-risk not registered")
	}
	if _, ok := Get("pregnancy-probability"); !ok {
		t.Fatalf("pregnancy-probability not registered")
	}
	if _, ok := Get("nope"); ok {
		t.Fatalf("unexpected questionnaire")
	}
	list := List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(list))
	}
	if list[0].QuestionCount == 0 {
		t.Fatalf("summary question count missing")
	}
}

// Every questionnaire must be well formed: unique question ids, a zero-floor
// tier table sorted descending, recommendations for every tier, and a
// timeframe enum no longer than the timing question's option list.
func TestContentWellFormed(t *testing.T) {
	for _, s := range List() {
		q, _ := Get(s.ID)
		t.Run(q.ID, func(t *testing.T) {
			seen := map[int]bool{}
			for _, qu := range q.Questions {
				if seen[qu.ID] {
					t.Errorf("duplicate question id %d", qu.ID)
				}
				seen[qu.ID] = true
				if len(qu.Options) == 0 {
					t.Errorf("question %d has no options", qu.ID)
				}
				for _, o := range qu.Options {
					if o.Score < 0 {
						t.Errorf("question %d has negative option score", qu.ID)
					}
				}
				if qu.Type == assessment.MultipleChoice && qu.MaxScore <= 0 {
					t.Errorf("multi-choice question %d missing score cap", qu.ID)
				}
			}

			if n := len(q.Tiers); n == 0 || q.Tiers[n-1].MinScore != 0 {
				t.Fatalf("tier table must end with a 0 floor")
			}
			for i := 1; i < len(q.Tiers); i++ {
				if q.Tiers[i].MinScore >= q.Tiers[i-1].MinScore {
					t.Errorf("tier table not strictly descending at %d", i)
				}
			}
			for _, th := range q.Tiers {
				if len(q.Recommendations[th.Tier]) == 0 {
					t.Errorf("tier %q has no recommendations", th.Tier)
				}
				if q.TierTitles[th.Tier] == "" {
					t.Errorf("tier %q has no title", th.Tier)
				}
			}

			if q.TimeframeFor != 0 {
				var timing *assessment.Question
				for i := range q.Questions {
					if q.Questions[i].ID == q.TimeframeFor {
						timing = &q.Questions[i]
					}
				}
				if timing == nil {
					t.Fatalf("timeframe question %d not found", q.TimeframeFor)
				}
				if timing.Type != assessment.SingleChoice {
					t.Errorf("timeframe question %d must be single choice", q.TimeframeFor)
				}
				if len(q.Timeframes) > len(timing.Options) {
					t.Errorf("timeframe enum longer than option list")
				}
				for _, tf := range q.Timeframes {
					if _, ok := q.RetestOffsets[tf]; !ok {
						t.Errorf("timeframe %q has no retest offsets", tf)
					}
				}
			}
		})
	}
}

func TestPublicStripsScores(t *testing.T) {
	pub := Public(HIVRisk)
	if pub.Tiers != nil || pub.Recommendations != nil || pub.RetestOffsets != nil {
		t.Fatalf("scoring tables must be stripped")
	}
	for _, q := range pub.Questions {
		if q.MaxScore != 0 {
			t.Fatalf("question %d cap leaked", q.ID)
		}
		for _, o := range q.Options {
			if o.Score != 0 {
				t.Fatalf("question %d option score leaked", q.ID)
			}
		}
	}
	// Original untouched.
	if HIVRisk.Questions[0].Options[0].Score == 0 {
		t.Fatalf("Public mutated the source questionnaire")
	}
}
