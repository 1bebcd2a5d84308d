package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:vitalcheck.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/vitalcheck?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  questionnaire_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  phase TEXT NOT NULL,
  question_index INTEGER NOT NULL DEFAULT 0,
  answers_json TEXT NOT NULL,
  result_id TEXT NOT NULL DEFAULT '',
  started_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  questionnaire_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  total_score INTEGER NOT NULL,
  tier TEXT NOT NULL,
  tier_title TEXT NOT NULL DEFAULT '',
  timeframe TEXT NOT NULL DEFAULT '',
  recommendations_json TEXT NOT NULL,
  retest_offsets_json TEXT NOT NULL,
  snapshot_json TEXT NOT NULL,
  completed_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS readings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  systolic INTEGER NOT NULL DEFAULT 0,
  diastolic INTEGER NOT NULL DEFAULT 0,
  value REAL NOT NULL DEFAULT 0,
  context TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT 'manual',
  note TEXT NOT NULL DEFAULT '',
  taken_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_user_kind ON readings(user_id, kind, taken_at);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" INTEGER PRIMARY KEY AUTOINCREMENT, -- BIGSERIAL in Postgres
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,                         -- e.g., AssessmentCompleted
  key TEXT NOT NULL,                         -- natural key: result/reading id
  data TEXT NOT NULL,                        -- JSON payload
  created_at INTEGER NOT NULL
);

`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  questionnaire_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  phase TEXT NOT NULL,
  question_index INTEGER NOT NULL DEFAULT 0,
  answers_json TEXT NOT NULL,
  result_id TEXT NOT NULL DEFAULT '',
  started_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  questionnaire_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  total_score INTEGER NOT NULL,
  tier TEXT NOT NULL,
  tier_title TEXT NOT NULL DEFAULT '',
  timeframe TEXT NOT NULL DEFAULT '',
  recommendations_json TEXT NOT NULL,
  retest_offsets_json TEXT NOT NULL,
  snapshot_json TEXT NOT NULL,
  completed_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS readings (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  systolic INTEGER NOT NULL DEFAULT 0,
  diastolic INTEGER NOT NULL DEFAULT 0,
  value DOUBLE PRECISION NOT NULL DEFAULT 0,
  context TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT 'manual',
  note TEXT NOT NULL DEFAULT '',
  taken_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_user_kind ON readings(user_id, kind, taken_at);

CREATE TABLE IF NOT EXISTS event_log (
  "offset" BIGSERIAL PRIMARY KEY,
  site_id TEXT NOT NULL DEFAULT 'local',
  typ TEXT NOT NULL,
  key TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at BIGINT NOT NULL
);

`
