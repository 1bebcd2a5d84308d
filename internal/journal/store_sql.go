package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// SQLStore persists readings over database/sql, portable across sqlite and
// postgres ($1 placeholders; day bucketing done in Go, not SQL).
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Add(ctx context.Context, r Reading) (Reading, error) {
	if err := r.Validate(); err != nil {
		return Reading{}, err
	}
	r.ID = uuid.NewString()
	if r.TakenAt == 0 {
		r.TakenAt = s.now().Unix()
	}
	if r.Source == "" {
		r.Source = SourceManual
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO readings
		(id,user_id,kind,systolic,diastolic,value,context,source,note,taken_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		r.ID, r.UserID, string(r.Kind), r.Systolic, r.Diastolic, r.Value, r.Context, string(r.Source), r.Note, r.TakenAt)
	if err != nil {
		return Reading{}, err
	}
	return r, nil
}

func (s *SQLStore) List(ctx context.Context, userID string, kind Kind, limit int) ([]Reading, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var rows *sql.Rows
	var err error
	if kind == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT id,user_id,kind,systolic,diastolic,value,context,source,note,taken_at
			FROM readings WHERE user_id=$1 ORDER BY taken_at DESC LIMIT $2`, userID, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT id,user_id,kind,systolic,diastolic,value,context,source,note,taken_at
			FROM readings WHERE user_id=$1 AND kind=$2 ORDER BY taken_at DESC LIMIT $3`, userID, string(kind), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Reading
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) Latest(ctx context.Context, userID string, kind Kind) (Reading, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,user_id,kind,systolic,diastolic,value,context,source,note,taken_at
		FROM readings WHERE user_id=$1 AND kind=$2 ORDER BY taken_at DESC LIMIT 1`, userID, string(kind))
	r, err := scanReading(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Reading{}, ErrNotFound
		}
		return Reading{}, err
	}
	return r, nil
}

func (s *SQLStore) Delete(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM readings WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) DaysWithReadings(ctx context.Context, userID string, days int) (int, error) {
	cutoff := s.now().AddDate(0, 0, -days).Unix()
	rows, err := s.db.QueryContext(ctx, `SELECT taken_at FROM readings WHERE user_id=$1 AND taken_at>=$2`, userID, cutoff)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	seen := map[string]struct{}{}
	for rows.Next() {
		var ts int64
		if err := rows.Scan(&ts); err != nil {
			return 0, err
		}
		seen[time.Unix(ts, 0).Format("2006-01-02")] = struct{}{}
	}
	return len(seen), rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReading(row rowScanner) (Reading, error) {
	var r Reading
	var kind, source string
	if err := row.Scan(&r.ID, &r.UserID, &kind, &r.Systolic, &r.Diastolic, &r.Value,
		&r.Context, &source, &r.Note, &r.TakenAt); err != nil {
		return Reading{}, err
	}
	r.Kind = Kind(kind)
	r.Source = Source(source)
	return r, nil
}
