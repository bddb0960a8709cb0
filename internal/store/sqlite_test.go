package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deedscope/research-cli/internal/config"
	"github.com/deedscope/research-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_BreakdownRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	b := testBreakdown("parcel-101", 92.4)
	require.NoError(t, s.SaveBreakdown(ctx, b))

	got, err := s.LatestBreakdown(ctx, "parcel-101")
	require.NoError(t, err)
	assert.Equal(t, "parcel-101", got.PropertyID)
	assert.InDelta(t, 92.4, got.Total, 1e-9)
	assert.Equal(t, "B", got.Grade)
	assert.Equal(t, "Atlanta", got.Metro)
}

func TestSQLiteStore_LatestBreakdown_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.LatestBreakdown(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no breakdown")
}

func TestSQLiteStore_ListBreakdowns_Filters(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	high := testBreakdown("parcel-high", 110)
	low := testBreakdown("parcel-low", 40)
	vacant := testBreakdown("parcel-vacant", 90)
	vacant.PropertyType = "vacant_land"
	for _, b := range []*model.ScoreBreakdown{high, low, vacant} {
		require.NoError(t, s.SaveBreakdown(ctx, b))
	}

	got, err := s.ListBreakdowns(ctx, BreakdownFilter{MinTotal: 60})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = s.ListBreakdowns(ctx, BreakdownFilter{PropertyType: "vacant_land"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "parcel-vacant", got[0].PropertyID)

	got, err = s.ListBreakdowns(ctx, BreakdownFilter{Metro: "Tampa"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLiteStore_ComparisonRoundTrip(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	res := &model.ComparisonResult{
		ID:            uuid.NewString(),
		GeneratedAt:   time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Property1:     testBreakdown("parcel-a", 95),
		Property2:     testBreakdown("parcel-b", 80),
		OverallWinner: model.WinnerProperty1,
		Strength:      model.StrengthModerate,
		Summary:       "Property parcel-a is the stronger investment.",
	}
	require.NoError(t, s.SaveComparison(ctx, res))

	got, err := s.GetComparison(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)
	assert.Equal(t, model.WinnerProperty1, got.OverallWinner)
	assert.Equal(t, res.Summary, got.Summary)
}

func TestSQLiteStore_GetComparison_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetComparison(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
