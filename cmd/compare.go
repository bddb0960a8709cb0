package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/comparison"
)

var compareCmd = &cobra.Command{
	Use:   "compare <property1.json> <property2.json>",
	Short: "Compare two properties side by side",
	Long: `Scores both properties independently, then produces a category-by-
category comparison with a ranked recommendation and plain-language
narrative.

Identical inputs always produce identical output apart from the report
id and timestamp.

Examples:
  deedscope compare parcelA.json parcelB.json
  deedscope compare parcelA.json parcelB.json --format json
  deedscope compare parcelA.json parcelB.json --min-confidence 30 --save`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.String("format", "table", "output format: table, json, or yaml")
	f.String("output", "", "output file path (default: stdout)")
	f.Float64("min-confidence", 0, "minimum average confidence (default from config)")
	f.Bool("save", false, "save the comparison to the configured store")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p1, err := loadProperty(args[0])
	if err != nil {
		return err
	}
	p2, err := loadProperty(args[1])
	if err != nil {
		return err
	}

	minConf, _ := cmd.Flags().GetFloat64("min-confidence")
	if minConf <= 0 {
		minConf = cfg.Comparison.MinConfidenceThreshold
	}

	res, err := comparison.NewComparer(nil).Compare(p1, p2, &comparison.Options{
		MinConfidenceThreshold: minConf,
	})
	if err != nil {
		if eris.Is(err, comparison.ErrConfidenceTooLow) {
			return eris.Wrap(err, "compare: insufficient data for a recommendation (lower --min-confidence to force)")
		}
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	w, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck

	if err := renderComparison(w, res, format); err != nil {
		return err
	}

	if save {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SaveComparison(ctx, res); err != nil {
			return err
		}
		zap.L().Info("comparison saved", zap.String("id", res.ID))
	}

	return nil
}
