package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/model"
	"github.com/deedscope/research-cli/internal/scoring"
	"github.com/deedscope/research-cli/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score <property.json>",
	Short: "Score a single property",
	Long: `Scores one property across the five investment categories and prints
the breakdown.

The input file holds one property record as JSON: identifiers, location
fields, classification signals, and the per-category component inputs.

Examples:
  # Human-readable breakdown
  deedscope score parcel.json

  # Machine-readable output
  deedscope score parcel.json --format json

  # Persist the breakdown for later listing
  deedscope score parcel.json --save

  # Show the latest saved breakdown for a property id
  deedscope score P-100 --stored`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("format", "table", "output format: table, json, or yaml")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "save the breakdown to the configured store")
	f.Bool("stored", false, "treat the argument as a property id and show its latest saved breakdown")

	rootCmd.AddCommand(scoreCmd)
}

func loadProperty(path string) (model.PropertyData, error) {
	var p model.PropertyData
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, eris.Wrapf(err, "score: read %s", path)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, eris.Wrapf(err, "score: parse %s", path)
	}
	if p.ID == "" {
		return p, eris.Errorf("score: %s has no property id", path)
	}
	return p, nil
}

func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

func runScore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	stored, _ := cmd.Flags().GetBool("stored")

	var b *model.ScoreBreakdown
	if stored {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if b, err = st.LatestBreakdown(ctx, args[0]); err != nil {
			return err
		}
		save = false
	} else {
		p, err := loadProperty(args[0])
		if err != nil {
			return err
		}
		if b, err = scoring.NewEngine().Score(p); err != nil {
			return eris.Wrapf(err, "score: property %s", p.ID)
		}
	}

	w, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck

	if err := renderBreakdown(w, b, format); err != nil {
		return err
	}

	if save {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SaveBreakdown(ctx, b); err != nil {
			return err
		}
		zap.L().Info("breakdown saved",
			zap.String("property_id", b.PropertyID),
			zap.Float64("total", b.Total),
		)
	}

	return nil
}
