// Package catalog holds the compile-time questionnaire content: question
// sets, tier tables, recommendations and retest guidance. Content is static;
// there is no authoring surface.
package catalog

import (
	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

// Summary is the listing view of a questionnaire.
type Summary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Summary       string `json:"summary,omitempty"`
	QuestionCount int    `json:"question_count"`
}

var registry = map[string]assessment.Questionnaire{
	HIVRisk.ID:              HIVRisk,
	PregnancyProbability.ID: PregnancyProbability,
}

var order = []string{HIVRisk.ID, PregnancyProbability.ID}

// Get returns a questionnaire by id.
func Get(id string) (assessment.Questionnaire, bool) {
	q, ok := registry[id]
	return q, ok
}

// List returns summaries for every questionnaire, in a fixed order.
func List() []Summary {
	out := make([]Summary, 0, len(order))
	for _, id := range order {
		q := registry[id]
		out = append(out, Summary{
			ID:            q.ID,
			Title:         q.Title,
			Summary:       q.Summary,
			QuestionCount: len(q.Questions),
		})
	}
	return out
}

// Public returns a copy of the questionnaire with option scores and tier
// tables stripped, safe to serve to clients. Parity rule: clients pick
// options by index and never see point values.
func Public(q assessment.Questionnaire) assessment.Questionnaire {
	pub := q
	pub.Tiers = nil
	pub.Recommendations = nil
	pub.TierTitles = nil
	pub.RetestOffsets = nil
	pub.Questions = make([]assessment.Question, len(q.Questions))
	for i, src := range q.Questions {
		cp := src
		cp.MaxScore = 0
		cp.Options = make([]assessment.Option, len(src.Options))
		for j, o := range src.Options {
			cp.Options[j] = assessment.Option{Text: o.Text}
		}
		pub.Questions[i] = cp
	}
	return pub
}
