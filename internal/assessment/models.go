package assessment

// QuestionType distinguishes how selections are interpreted and scored.
type QuestionType string

const (
	// SingleChoice questions hold at most one selected option; selecting a
	// new option replaces the previous selection.
	SingleChoice QuestionType = "single_choice"
	// MultipleChoice questions allow any subset of options; the per-question
	// score is capped at the question's MaxScore.
	MultipleChoice QuestionType = "multiple_choice"
)

// Option is one selectable answer. Order is significant: the option's index
// within the question is the selection key.
type Option struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Question is a single questionnaire item.
type Question struct {
	ID       int          `json:"id"`
	Section  string       `json:"section,omitempty"`
	Title    string       `json:"title"`
	Type     QuestionType `json:"type"`
	MaxScore int          `json:"max_score,omitempty"` // cap for multiple_choice; ignored for single_choice
	Options  []Option     `json:"options"`
	Note     string       `json:"note,omitempty"`
}

// AnswerSet maps question id to the ordered selected option indices.
// It is built incrementally by the caller; the engine never mutates it.
type AnswerSet map[int][]int

// Select records a single-choice selection, replacing any prior one.
func (a AnswerSet) Select(questionID, option int) {
	a[questionID] = []int{option}
}

// Toggle flips a multiple-choice selection on or off, preserving the order
// of the remaining selections.
func (a AnswerSet) Toggle(questionID, option int) {
	cur := a[questionID]
	for i, v := range cur {
		if v == option {
			a[questionID] = append(cur[:i:i], cur[i+1:]...)
			if len(a[questionID]) == 0 {
				delete(a, questionID)
			}
			return
		}
	}
	a[questionID] = append(cur, option)
}

// Selected returns the selected indices for a question (nil if unanswered).
func (a AnswerSet) Selected(questionID int) []int { return a[questionID] }

// Clone returns an independent copy of the answer set.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for k, v := range a {
		cp := make([]int, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Tier is a named risk/probability bucket assigned by comparing the total
// score against ordered thresholds.
type Tier string

// Threshold binds an inclusive lower score bound to a tier.
type Threshold struct {
	MinScore int  `json:"min_score"`
	Tier     Tier `json:"tier"`
}

// ThresholdTable is ordered descending by MinScore. A well-formed table
// always ends with a MinScore of 0 so every score classifies.
type ThresholdTable []Threshold

// Timeframe is the secondary answer derived from the designated timing
// question: a positional index-to-enum mapping, independent of scoring.
type Timeframe string

// Questionnaire is a complete static question set plus its scoring tables.
type Questionnaire struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	Summary         string               `json:"summary,omitempty"`
	Questions       []Question           `json:"questions"`
	Tiers           ThresholdTable       `json:"tiers"`
	Recommendations map[Tier][]string    `json:"recommendations"`
	TierTitles      map[Tier]string      `json:"tier_titles,omitempty"`
	TimeframeFor    int                  `json:"timeframe_for,omitempty"` // question id driving Timeframe; 0 = none
	Timeframes      []Timeframe          `json:"timeframes,omitempty"`    // index-aligned with that question's options
	RetestOffsets   map[Timeframe][]int  `json:"retest_offsets,omitempty"` // day offsets keyed by Timeframe
}

// Result is the immutable outcome of evaluating a completed answer set.
// It is computed once at submission and redisplayed as-is, never recomputed.
type Result struct {
	TotalScore      int       `json:"total_score"`
	Tier            Tier      `json:"tier"`
	TierTitle       string    `json:"tier_title,omitempty"`
	Timeframe       Timeframe `json:"timeframe,omitempty"`
	Recommendations []string  `json:"recommendations"`
	RetestOffsets   []int     `json:"retest_offsets,omitempty"`
}
