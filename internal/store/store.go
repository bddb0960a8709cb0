// Package store persists scoring results for watchlist and report surfaces.
// The engine itself never persists anything; callers opt in via --save or
// the HTTP API.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/deedscope/research-cli/internal/config"
	"github.com/deedscope/research-cli/internal/model"
)

// BreakdownFilter specifies criteria for listing saved score breakdowns.
type BreakdownFilter struct {
	PropertyType string  `json:"property_type,omitempty"`
	Metro        string  `json:"metro,omitempty"`
	MinTotal     float64 `json:"min_total,omitempty"`
	Limit        int     `json:"limit,omitempty"`
}

// Store defines the persistence interface for scoring output.
type Store interface {
	// Breakdowns
	SaveBreakdown(ctx context.Context, b *model.ScoreBreakdown) error
	LatestBreakdown(ctx context.Context, propertyID string) (*model.ScoreBreakdown, error)
	ListBreakdowns(ctx context.Context, filter BreakdownFilter) ([]model.ScoreBreakdown, error)

	// Comparisons
	SaveComparison(ctx context.Context, res *model.ComparisonResult) error
	GetComparison(ctx context.Context, id string) (*model.ComparisonResult, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
