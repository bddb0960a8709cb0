package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/model"
)

// pgxPool is the subset of pgxpool.Pool the store uses; pgxmock satisfies
// it in unit tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool pgxPool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS score_breakdowns (
	id            UUID PRIMARY KEY,
	property_id   TEXT NOT NULL,
	total         DOUBLE PRECISION NOT NULL,
	grade         TEXT NOT NULL,
	confidence    DOUBLE PRECISION NOT NULL,
	property_type TEXT NOT NULL,
	metro         TEXT NOT NULL DEFAULT '',
	payload       JSONB NOT NULL,
	scored_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_breakdowns_property
	ON score_breakdowns (property_id, scored_at DESC);

CREATE TABLE IF NOT EXISTS comparisons (
	id           UUID PRIMARY KEY,
	property1_id TEXT NOT NULL,
	property2_id TEXT NOT NULL,
	winner       TEXT NOT NULL,
	strength     TEXT NOT NULL,
	payload      JSONB NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL
);
`

// Migrate creates the store tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

// SaveBreakdown inserts a score breakdown.
func (s *PostgresStore) SaveBreakdown(ctx context.Context, b *model.ScoreBreakdown) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal breakdown")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO score_breakdowns
			(id, property_id, total, grade, confidence, property_type, metro, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, uuid.NewString(), b.PropertyID, b.Total, b.Grade, b.Confidence, b.PropertyType, b.Metro, payload)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert breakdown for %s", b.PropertyID)
	}

	zap.L().Debug("store: breakdown saved",
		zap.String("property_id", b.PropertyID),
		zap.Float64("total", b.Total),
	)
	return nil
}

// LatestBreakdown returns the most recent breakdown for a property.
func (s *PostgresStore) LatestBreakdown(ctx context.Context, propertyID string) (*model.ScoreBreakdown, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload FROM score_breakdowns
		WHERE property_id = $1
		ORDER BY scored_at DESC
		LIMIT 1
	`, propertyID).Scan(&payload)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("postgres: no breakdown for property %s", propertyID)
		}
		return nil, eris.Wrapf(err, "postgres: get breakdown for %s", propertyID)
	}

	var b model.ScoreBreakdown
	if err := json.Unmarshal(payload, &b); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal breakdown for %s", propertyID)
	}
	return &b, nil
}

// ListBreakdowns returns the latest breakdown per property matching the filter.
func (s *PostgresStore) ListBreakdowns(ctx context.Context, filter BreakdownFilter) ([]model.ScoreBreakdown, error) {
	query := `
		SELECT DISTINCT ON (property_id) payload
		FROM score_breakdowns
		WHERE total >= $1
		  AND ($2 = '' OR property_type = $2)
		  AND ($3 = '' OR metro = $3)
		ORDER BY property_id, scored_at DESC
	`
	rows, err := s.pool.Query(ctx, query, filter.MinTotal, filter.PropertyType, filter.Metro)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list breakdowns")
	}
	defer rows.Close()

	var out []model.ScoreBreakdown
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan breakdown")
		}
		var b model.ScoreBreakdown
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal breakdown")
		}
		out = append(out, b)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate breakdowns")
	}
	return out, nil
}

// SaveComparison inserts a comparison result.
func (s *PostgresStore) SaveComparison(ctx context.Context, res *model.ComparisonResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal comparison")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO comparisons
			(id, property1_id, property2_id, winner, strength, payload, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, res.ID, res.Property1.PropertyID, res.Property2.PropertyID,
		string(res.OverallWinner), string(res.Strength), payload, res.GeneratedAt)
	if err != nil {
		return eris.Wrapf(err, "postgres: insert comparison %s", res.ID)
	}
	return nil
}

// GetComparison returns a saved comparison by id.
func (s *PostgresStore) GetComparison(ctx context.Context, id string) (*model.ComparisonResult, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `SELECT payload FROM comparisons WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if eris.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("postgres: comparison %s not found", id)
		}
		return nil, eris.Wrapf(err, "postgres: get comparison %s", id)
	}

	var res model.ComparisonResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return nil, eris.Wrapf(err, "postgres: unmarshal comparison %s", id)
	}
	return &res, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
