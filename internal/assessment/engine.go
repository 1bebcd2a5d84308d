package assessment

// Score aggregates a total score for answers against the question list.
//
// Single-choice questions contribute the score of the single selected option;
// multiple-choice questions contribute the sum of selected option scores
// clamped to the question's MaxScore. Unanswered questions and out-of-range
// option indices contribute 0 — out-of-range indices are ignored rather than
// rejected so a stale answer set (recorded against an older option list)
// still scores without error.
//
// Score never mutates questions or answers and always returns the same total
// for the same inputs.
func Score(questions []Question, answers AnswerSet) int {
	total := 0
	for _, q := range questions {
		total += questionScore(q, answers[q.ID])
	}
	return total
}

func questionScore(q Question, selected []int) int {
	switch q.Type {
	case SingleChoice:
		if len(selected) == 0 {
			return 0
		}
		i := selected[0]
		if i < 0 || i >= len(q.Options) {
			return 0
		}
		return q.Options[i].Score
	case MultipleChoice:
		sum := 0
		for _, i := range selected {
			if i < 0 || i >= len(q.Options) {
				continue
			}
			sum += q.Options[i].Score
		}
		if q.MaxScore > 0 && sum > q.MaxScore {
			sum = q.MaxScore
		}
		return sum
	}
	return 0
}

// Classify returns the tier of the first table entry whose MinScore the
// total meets or exceeds. The table is ordered descending; a boundary score
// classifies into the higher tier. An empty table yields the zero Tier;
// a total below every entry falls through to the last (floor) entry.
func Classify(total int, table ThresholdTable) Tier {
	for _, t := range table {
		if total >= t.MinScore {
			return t.Tier
		}
	}
	if len(table) > 0 {
		return table[len(table)-1].Tier
	}
	return ""
}

// Evaluate scores a completed answer set against a questionnaire and derives
// the full result: total, tier, tier recommendations, the timeframe secondary
// answer, and any suggested retest day offsets keyed by that timeframe.
func Evaluate(q Questionnaire, answers AnswerSet) Result {
	total := Score(q.Questions, answers)
	tier := Classify(total, q.Tiers)

	res := Result{
		TotalScore:      total,
		Tier:            tier,
		TierTitle:       q.TierTitles[tier],
		Recommendations: q.Recommendations[tier],
	}

	if tf, ok := deriveTimeframe(q, answers); ok {
		res.Timeframe = tf
		res.RetestOffsets = q.RetestOffsets[tf]
	}
	return res
}

// deriveTimeframe maps the designated timing question's selected index to the
// questionnaire's timeframe enum by position. It only applies when that
// question is single-choice and was answered with an in-range index.
func deriveTimeframe(q Questionnaire, answers AnswerSet) (Timeframe, bool) {
	if q.TimeframeFor == 0 || len(q.Timeframes) == 0 {
		return "", false
	}
	var timing *Question
	for i := range q.Questions {
		if q.Questions[i].ID == q.TimeframeFor {
			timing = &q.Questions[i]
			break
		}
	}
	if timing == nil || timing.Type != SingleChoice {
		return "", false
	}
	sel := answers[timing.ID]
	if len(sel) == 0 {
		return "", false
	}
	i := sel[0]
	if i < 0 || i >= len(q.Timeframes) {
		return "", false
	}
	return q.Timeframes[i], true
}
