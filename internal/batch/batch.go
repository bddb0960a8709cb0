// Package batch scores many properties concurrently. Scoring itself is
// pure CPU work; the bound here exists so large spreadsheet imports do not
// fan out into thousands of goroutines at once.
package batch

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/deedscope/research-cli/internal/model"
	"github.com/deedscope/research-cli/internal/scoring"
)

// Result pairs one input property with its scoring outcome. Exactly one of
// Breakdown and Err is set.
type Result struct {
	PropertyID string
	Breakdown  *model.ScoreBreakdown
	Err        error
}

// Run scores all properties with at most maxConcurrent goroutines and
// returns results in input order. Individual scoring failures are recorded
// per-result; only context cancellation aborts the run.
func Run(ctx context.Context, engine *scoring.Engine, props []model.PropertyData, maxConcurrent int) ([]Result, error) {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	results := make([]Result, len(props))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, p := range props {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "batch: cancelled")
			}
			b, err := engine.Score(p)
			results[i] = Result{PropertyID: p.ID, Breakdown: b, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	zap.L().Info("batch: scoring complete",
		zap.Int("total", len(results)),
		zap.Int("failed", failed),
	)
	return results, nil
}
