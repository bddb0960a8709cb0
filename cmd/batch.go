package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/batch"
	"github.com/deedscope/research-cli/internal/importer"
	"github.com/deedscope/research-cli/internal/model"
	"github.com/deedscope/research-cli/internal/scoring"
)

var batchCmd = &cobra.Command{
	Use:   "batch <properties.csv|.xlsx|.json>",
	Short: "Score every property in a spreadsheet export",
	Long: `Loads a CSV/XLSX county export or a JSON property list and scores each
row concurrently.
A row that fails to score is reported in place; it never aborts the run.

Examples:
  deedscope batch fulton_export.csv
  deedscope batch maricopa.xlsx --sheet "Tax Deeds" --format json --output scores.json
  deedscope batch fulton_export.csv --save`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("format", "table", "output format: table or json")
	f.String("output", "", "output file path (default: stdout)")
	f.String("sheet", "", "XLSX sheet name (default: first sheet)")
	f.Int("concurrency", 0, "max concurrent scorers (default from config)")
	f.Bool("save", false, "save breakdowns to the configured store")

	rootCmd.AddCommand(batchCmd)
}

func loadProperties(path, sheet string) ([]model.PropertyData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importer.LoadCSV(path, importer.Options{})
	case ".xlsx":
		return importer.LoadXLSX(path, importer.Options{SheetName: sheet})
	case ".json":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "batch: read %s", path)
		}
		var props []model.PropertyData
		if err := json.Unmarshal(raw, &props); err != nil {
			return nil, eris.Wrapf(err, "batch: parse %s", path)
		}
		return props, nil
	default:
		return nil, eris.Errorf("batch: unsupported file type %q (want .csv, .xlsx, or .json)", filepath.Ext(path))
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sheet, _ := cmd.Flags().GetString("sheet")
	props, err := loadProperties(args[0], sheet)
	if err != nil {
		return err
	}
	if len(props) == 0 {
		return eris.Errorf("batch: %s contains no property rows", args[0])
	}

	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Batch.MaxConcurrent
	}

	zap.L().Info("starting batch scoring",
		zap.String("file", args[0]),
		zap.Int("properties", len(props)),
		zap.Int("concurrency", concurrency),
	)

	results, err := batch.Run(ctx, scoring.NewEngine(), props, concurrency)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	w, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut() //nolint:errcheck

	if err := renderBatch(w, results, format); err != nil {
		return err
	}

	save, _ := cmd.Flags().GetBool("save")
	if save {
		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		saved := 0
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if err := st.SaveBreakdown(ctx, r.Breakdown); err != nil {
				return eris.Wrapf(err, "batch: save %s", r.PropertyID)
			}
			saved++
		}
		zap.L().Info("batch saved", zap.Int("breakdowns", saved))
	}

	return nil
}
