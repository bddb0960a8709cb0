package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	_ "modernc.org/sqlite"

	"github.com/deedscope/research-cli/internal/model"
)

// SQLiteStore implements Store on an embedded sqlite file. It is the
// default backend for single-user CLI runs.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the sqlite database at path.
func NewSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "deedscope.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: open %s", path)
	}
	// Single writer, so no benefit from more connections.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS score_breakdowns (
	id            TEXT PRIMARY KEY,
	property_id   TEXT NOT NULL,
	total         REAL NOT NULL,
	grade         TEXT NOT NULL,
	confidence    REAL NOT NULL,
	property_type TEXT NOT NULL,
	metro         TEXT NOT NULL DEFAULT '',
	payload       TEXT NOT NULL,
	scored_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_breakdowns_property
	ON score_breakdowns (property_id, scored_at DESC);

CREATE TABLE IF NOT EXISTS comparisons (
	id           TEXT PRIMARY KEY,
	property1_id TEXT NOT NULL,
	property2_id TEXT NOT NULL,
	winner       TEXT NOT NULL,
	strength     TEXT NOT NULL,
	payload      TEXT NOT NULL,
	generated_at TEXT NOT NULL
);
`

// Migrate creates the store tables if they do not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// SaveBreakdown inserts a score breakdown.
func (s *SQLiteStore) SaveBreakdown(ctx context.Context, b *model.ScoreBreakdown) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal breakdown")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO score_breakdowns
			(id, property_id, total, grade, confidence, property_type, metro, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), b.PropertyID, b.Total, b.Grade, b.Confidence,
		b.PropertyType, b.Metro, string(payload))
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert breakdown for %s", b.PropertyID)
	}
	return nil
}

// LatestBreakdown returns the most recent breakdown for a property.
func (s *SQLiteStore) LatestBreakdown(ctx context.Context, propertyID string) (*model.ScoreBreakdown, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT payload FROM score_breakdowns
		WHERE property_id = ?
		ORDER BY scored_at DESC
		LIMIT 1
	`, propertyID).Scan(&payload)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("sqlite: no breakdown for property %s", propertyID)
		}
		return nil, eris.Wrapf(err, "sqlite: get breakdown for %s", propertyID)
	}

	var b model.ScoreBreakdown
	if err := json.Unmarshal([]byte(payload), &b); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal breakdown for %s", propertyID)
	}
	return &b, nil
}

// ListBreakdowns returns the latest breakdown per property matching the filter.
func (s *SQLiteStore) ListBreakdowns(ctx context.Context, filter BreakdownFilter) ([]model.ScoreBreakdown, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM score_breakdowns b
		WHERE scored_at = (
			SELECT MAX(scored_at) FROM score_breakdowns
			WHERE property_id = b.property_id
		)
		  AND total >= ?
		  AND (? = '' OR property_type = ?)
		  AND (? = '' OR metro = ?)
		ORDER BY property_id
	`, filter.MinTotal, filter.PropertyType, filter.PropertyType, filter.Metro, filter.Metro)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list breakdowns")
	}
	defer rows.Close()

	var out []model.ScoreBreakdown
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan breakdown")
		}
		var b model.ScoreBreakdown
		if err := json.Unmarshal([]byte(payload), &b); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal breakdown")
		}
		out = append(out, b)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate breakdowns")
	}
	return out, nil
}

// SaveComparison inserts a comparison result.
func (s *SQLiteStore) SaveComparison(ctx context.Context, res *model.ComparisonResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal comparison")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO comparisons
			(id, property1_id, property2_id, winner, strength, payload, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, res.ID, res.Property1.PropertyID, res.Property2.PropertyID,
		string(res.OverallWinner), string(res.Strength), string(payload),
		res.GeneratedAt.UTC().Format("2006-01-02T15:04:05.000Z"))
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert comparison %s", res.ID)
	}
	return nil
}

// GetComparison returns a saved comparison by id.
func (s *SQLiteStore) GetComparison(ctx context.Context, id string) (*model.ComparisonResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM comparisons WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("sqlite: comparison %s not found", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get comparison %s", id)
	}

	var res model.ComparisonResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal comparison %s", id)
	}
	return &res, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
