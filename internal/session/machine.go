package session

import (
	"strconv"

	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

// Transition rules shared by the store implementations. They mutate the
// session in place; persistence is the store's job.

func applyAnswer(s *Session, q assessment.Questionnaire, questionID, option int) error {
	if s.Phase == PhaseResult {
		return ErrCompleted
	}
	var target *assessment.Question
	for i := range q.Questions {
		if q.Questions[i].ID == questionID {
			target = &q.Questions[i]
			break
		}
	}
	if target == nil {
		return ErrUnknownQuestion
	}
	if s.Answers == nil {
		s.Answers = assessment.AnswerSet{}
	}
	switch target.Type {
	case assessment.SingleChoice:
		s.Answers.Select(questionID, option)
	default:
		s.Answers.Toggle(questionID, option)
	}
	if s.Phase == PhaseIntro {
		s.Phase = PhaseQuestion
	}
	return nil
}

// advance reports whether the session should finalize (advanced past the
// last question).
func advance(s *Session, q assessment.Questionnaire) (bool, error) {
	switch s.Phase {
	case PhaseResult:
		return false, ErrCompleted
	case PhaseIntro:
		s.Phase = PhaseQuestion
		s.QuestionIndex = 0
		return false, nil
	}
	if s.QuestionIndex < len(q.Questions) {
		cur := q.Questions[s.QuestionIndex]
		if len(s.Answers.Selected(cur.ID)) == 0 {
			return false, ErrNotAnswered
		}
	}
	if s.QuestionIndex >= len(q.Questions)-1 {
		return true, nil
	}
	s.QuestionIndex++
	return false, nil
}

func back(s *Session) error {
	if s.Phase == PhaseResult {
		return ErrCompleted
	}
	if s.Phase == PhaseQuestion && s.QuestionIndex > 0 {
		s.QuestionIndex--
	}
	return nil
}

func retake(s *Session) error {
	if s.Phase != PhaseResult {
		return nil // retake is a no-op unless completed
	}
	s.Phase = PhaseIntro
	s.QuestionIndex = 0
	s.Answers = assessment.AnswerSet{}
	s.ResultID = ""
	return nil
}

// buildRecord evaluates the answer set once and freezes the outcome,
// including the answer snapshot blob.
func buildRecord(id string, s Session, q assessment.Questionnaire, now int64) Record {
	res := assessment.Evaluate(q, s.Answers)
	return Record{
		ID:              id,
		SessionID:       s.ID,
		QuestionnaireID: s.QuestionnaireID,
		UserID:          s.UserID,
		TotalScore:      res.TotalScore,
		Tier:            res.Tier,
		TierTitle:       res.TierTitle,
		Timeframe:       res.Timeframe,
		Recommendations: res.Recommendations,
		RetestOffsets:   res.RetestOffsets,
		Snapshot:        snapshotAnswers(s.Answers),
		CompletedAt:     now,
	}
}

func snapshotAnswers(a assessment.AnswerSet) map[string][]int {
	out := make(map[string][]int, len(a))
	for qid, sel := range a {
		cp := make([]int, len(sel))
		copy(cp, sel)
		out[strconv.Itoa(qid)] = cp
	}
	return out
}
