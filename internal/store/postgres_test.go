package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deedscope/research-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func testBreakdown(id string, total float64) *model.ScoreBreakdown {
	return &model.ScoreBreakdown{
		PropertyID:   id,
		Total:        total,
		Grade:        "B",
		Confidence:   72,
		PropertyType: "single_family",
		Metro:        "Atlanta",
		Categories: map[model.Category]model.CategoryScore{
			model.CategoryLocation: {Category: model.CategoryLocation, Score: total / 5, Confidence: 72},
		},
	}
}

func TestPostgresStore_SaveBreakdown(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	b := testBreakdown("parcel-001", 101.5)

	mock.ExpectExec(`INSERT INTO score_breakdowns`).
		WithArgs(pgxmock.AnyArg(), "parcel-001", 101.5, "B", 72.0,
			"single_family", "Atlanta", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveBreakdown(context.Background(), b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LatestBreakdown(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	b := testBreakdown("parcel-002", 88.2)
	payload, err := json.Marshal(b)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT payload FROM score_breakdowns`).
		WithArgs("parcel-002").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := s.LatestBreakdown(context.Background(), "parcel-002")
	require.NoError(t, err)
	assert.Equal(t, "parcel-002", got.PropertyID)
	assert.InDelta(t, 88.2, got.Total, 1e-9)
	assert.Equal(t, "Atlanta", got.Metro)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LatestBreakdown_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT payload FROM score_breakdowns`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.LatestBreakdown(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no breakdown")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBreakdowns(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	p1, err := json.Marshal(testBreakdown("parcel-a", 95))
	require.NoError(t, err)
	p2, err := json.Marshal(testBreakdown("parcel-b", 80))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT DISTINCT ON \(property_id\) payload`).
		WithArgs(60.0, "single_family", "").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(p1).AddRow(p2))

	got, err := s.ListBreakdowns(context.Background(), BreakdownFilter{
		PropertyType: "single_family",
		MinTotal:     60,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "parcel-a", got[0].PropertyID)
	assert.Equal(t, "parcel-b", got[1].PropertyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListBreakdowns_Limit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	p1, err := json.Marshal(testBreakdown("parcel-a", 95))
	require.NoError(t, err)
	p2, err := json.Marshal(testBreakdown("parcel-b", 80))
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT DISTINCT ON \(property_id\) payload`).
		WithArgs(0.0, "", "").
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(p1).AddRow(p2))

	got, err := s.ListBreakdowns(context.Background(), BreakdownFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "parcel-a", got[0].PropertyID)
}

func TestPostgresStore_SaveAndGetComparison(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	res := &model.ComparisonResult{
		ID:            uuid.NewString(),
		GeneratedAt:   time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		Property1:     testBreakdown("parcel-a", 95),
		Property2:     testBreakdown("parcel-b", 80),
		OverallWinner: model.WinnerProperty1,
		Strength:      model.StrengthModerate,
	}
	payload, err := json.Marshal(res)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO comparisons`).
		WithArgs(res.ID, "parcel-a", "parcel-b", "property1",
			"moderate_preference", pgxmock.AnyArg(), res.GeneratedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveComparison(context.Background(), res))

	mock.ExpectQuery(`SELECT payload FROM comparisons`).
		WithArgs(res.ID).
		WillReturnRows(pgxmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := s.GetComparison(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.WinnerProperty1, got.OverallWinner)
	assert.Equal(t, "parcel-a", got.Property1.PropertyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetComparison_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT payload FROM comparisons`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetComparison(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS score_breakdowns`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
