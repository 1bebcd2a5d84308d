package session

import (
	"errors"

	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

// Phase is where the user is in the questionnaire flow.
type Phase string

const (
	PhaseIntro    Phase = "intro"
	PhaseQuestion Phase = "question"
	PhaseResult   Phase = "result"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrResultNotFound  = errors.New("result not found")
	ErrUnknownCatalog  = errors.New("questionnaire not found")
	ErrUnknownQuestion = errors.New("question not in questionnaire")
	ErrNotAnswered     = errors.New("current question not answered")
	ErrCompleted       = errors.New("session already completed")
)

// Session is one pass through a questionnaire. Answers accumulate while the
// session is in the question phase; the result is computed exactly once at
// submission and referenced by ResultID thereafter.
type Session struct {
	ID              string              `json:"id"`
	QuestionnaireID string              `json:"questionnaire_id"`
	UserID          string              `json:"user_id"`
	Phase           Phase               `json:"phase"`
	QuestionIndex   int                 `json:"question_index"`
	Answers         assessment.AnswerSet `json:"answers"`
	ResultID        string              `json:"result_id,omitempty"`
	StartedAt       int64               `json:"started_at"`
}

// Record is a persisted, immutable assessment outcome. Snapshot preserves
// the answer set as submitted (question id as string -> selected indices) so
// the result can be redisplayed even if the questionnaire content changes.
type Record struct {
	ID              string               `json:"id"`
	SessionID       string               `json:"session_id"`
	QuestionnaireID string               `json:"questionnaire_id"`
	UserID          string               `json:"user_id"`
	TotalScore      int                  `json:"total_score"`
	Tier            assessment.Tier      `json:"tier"`
	TierTitle       string               `json:"tier_title,omitempty"`
	Timeframe       assessment.Timeframe `json:"timeframe,omitempty"`
	Recommendations []string             `json:"recommendations"`
	RetestOffsets   []int                `json:"retest_offsets,omitempty"`
	Snapshot        map[string][]int     `json:"snapshot"`
	CompletedAt     int64                `json:"completed_at"`
}

// Catalog resolves questionnaire content for the stores. Satisfied by
// catalog.Get.
type Catalog func(id string) (assessment.Questionnaire, bool)

// Store owns session state and completed results.
type Store interface {
	Start(questionnaireID, userID string) (Session, error)
	Get(id string) (Session, error)
	// Answer applies a selection to a question: replace for single-choice,
	// toggle for multiple-choice.
	Answer(id string, questionID, option int) (Session, error)
	// Advance moves intro -> first question, question i -> i+1, and from the
	// last question finalizes into the result phase. Advancing off a question
	// requires at least one selection on it.
	Advance(id string) (Session, error)
	// Back moves to the previous question; bounded at the first question.
	Back(id string) (Session, error)
	// Submit finalizes from any question phase, evaluating the answer set
	// once. Submitting a completed session returns the stored result as-is.
	Submit(id string) (Record, error)
	// Retake resets a completed session to the intro with cleared answers.
	// Prior results remain stored and immutable.
	Retake(id string) (Session, error)
	GetResult(resultID string) (Record, error)
	ListResults(userID string) ([]Record, error)
}
