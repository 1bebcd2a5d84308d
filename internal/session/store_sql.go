package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vital-check/vitalcheck-api/internal/assessment"
)

// SQLStore persists sessions and results over database/sql. Works against
// both sqlite and postgres ($1 placeholders, JSON held in TEXT columns).
type SQLStore struct {
	db      *sql.DB
	catalog Catalog
}

func NewSQLStore(db *sql.DB, catalog Catalog) *SQLStore {
	return &SQLStore{db: db, catalog: catalog}
}

func (s *SQLStore) Start(questionnaireID, userID string) (Session, error) {
	if _, ok := s.catalog(questionnaireID); !ok {
		return Session{}, ErrUnknownCatalog
	}
	sess := Session{
		ID:              uuid.NewString(),
		QuestionnaireID: questionnaireID,
		UserID:          userID,
		Phase:           PhaseIntro,
		Answers:         map[int][]int{},
		StartedAt:       time.Now().Unix(),
	}
	aj, _ := json.Marshal(sess.Answers)
	_, err := s.db.Exec(`INSERT INTO sessions (id,questionnaire_id,user_id,phase,question_index,answers_json,result_id,started_at)
		VALUES ($1,$2,$3,$4,0,$5,'',$6)`,
		sess.ID, sess.QuestionnaireID, sess.UserID, string(sess.Phase), string(aj), sess.StartedAt)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLStore) Get(id string) (Session, error) {
	row := s.db.QueryRow(`SELECT id,questionnaire_id,user_id,phase,question_index,answers_json,result_id,started_at
		FROM sessions WHERE id=$1`, id)
	return scanSession(row)
}

func (s *SQLStore) Answer(id string, questionID, option int) (Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return Session{}, err
	}
	q, _ := s.catalog(sess.QuestionnaireID)
	if err := applyAnswer(&sess, q, questionID, option); err != nil {
		return Session{}, err
	}
	if err := s.save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLStore) Advance(id string) (Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return Session{}, err
	}
	q, _ := s.catalog(sess.QuestionnaireID)
	finalize, err := advance(&sess, q)
	if err != nil {
		return Session{}, err
	}
	if finalize {
		if _, err := s.finalize(&sess); err != nil {
			return Session{}, err
		}
	}
	if err := s.save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLStore) Back(id string) (Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return Session{}, err
	}
	if err := back(&sess); err != nil {
		return Session{}, err
	}
	if err := s.save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLStore) Submit(id string) (Record, error) {
	sess, err := s.Get(id)
	if err != nil {
		return Record{}, err
	}
	if sess.Phase == PhaseResult {
		return s.GetResult(sess.ResultID)
	}
	rec, err := s.finalize(&sess)
	if err != nil {
		return Record{}, err
	}
	if err := s.save(sess); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *SQLStore) Retake(id string) (Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return Session{}, err
	}
	if err := retake(&sess); err != nil {
		return Session{}, err
	}
	if err := s.save(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *SQLStore) GetResult(resultID string) (Record, error) {
	row := s.db.QueryRow(`SELECT id,session_id,questionnaire_id,user_id,total_score,tier,tier_title,timeframe,
		recommendations_json,retest_offsets_json,snapshot_json,completed_at
		FROM results WHERE id=$1`, resultID)
	return scanRecord(row)
}

func (s *SQLStore) ListResults(userID string) ([]Record, error) {
	rows, err := s.db.Query(`SELECT id,session_id,questionnaire_id,user_id,total_score,tier,tier_title,timeframe,
		recommendations_json,retest_offsets_json,snapshot_json,completed_at
		FROM results WHERE user_id=$1 ORDER BY completed_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// finalize evaluates once, inserts the immutable result row and flips the
// session into the result phase. The result row is never updated afterwards.
func (s *SQLStore) finalize(sess *Session) (Record, error) {
	q, _ := s.catalog(sess.QuestionnaireID)
	rec := buildRecord(uuid.NewString(), *sess, q, time.Now().Unix())

	rj, _ := json.Marshal(rec.Recommendations)
	oj, _ := json.Marshal(rec.RetestOffsets)
	sj, _ := json.Marshal(rec.Snapshot)
	_, err := s.db.Exec(`INSERT INTO results (id,session_id,questionnaire_id,user_id,total_score,tier,tier_title,timeframe,
		recommendations_json,retest_offsets_json,snapshot_json,completed_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		rec.ID, rec.SessionID, rec.QuestionnaireID, rec.UserID, rec.TotalScore, string(rec.Tier), rec.TierTitle,
		string(rec.Timeframe), string(rj), string(oj), string(sj), rec.CompletedAt)
	if err != nil {
		return Record{}, err
	}
	sess.Phase = PhaseResult
	sess.ResultID = rec.ID
	return rec, nil
}

func (s *SQLStore) save(sess Session) error {
	aj, _ := json.Marshal(sess.Answers)
	_, err := s.db.Exec(`UPDATE sessions SET phase=$1, question_index=$2, answers_json=$3, result_id=$4 WHERE id=$5`,
		string(sess.Phase), sess.QuestionIndex, string(aj), sess.ResultID, sess.ID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, error) {
	var sess Session
	var phase, ajson string
	if err := row.Scan(&sess.ID, &sess.QuestionnaireID, &sess.UserID, &phase, &sess.QuestionIndex,
		&ajson, &sess.ResultID, &sess.StartedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	sess.Phase = Phase(phase)
	if err := json.Unmarshal([]byte(ajson), &sess.Answers); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var tier, timeframe, rjson, ojson, sjson string
	if err := row.Scan(&rec.ID, &rec.SessionID, &rec.QuestionnaireID, &rec.UserID, &rec.TotalScore,
		&tier, &rec.TierTitle, &timeframe, &rjson, &ojson, &sjson, &rec.CompletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrResultNotFound
		}
		return Record{}, err
	}
	rec.Tier = assessment.Tier(tier)
	rec.Timeframe = assessment.Timeframe(timeframe)
	if err := json.Unmarshal([]byte(rjson), &rec.Recommendations); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(ojson), &rec.RetestOffsets); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal([]byte(sjson), &rec.Snapshot); err != nil {
		return Record{}, err
	}
	return rec, nil
}
