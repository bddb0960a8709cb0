package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/deedscope/research-cli/internal/batch"
	"github.com/deedscope/research-cli/internal/model"
)

var titleCaser = cases.Title(language.AmericanEnglish)

// openOutput returns the writer for --output, defaulting to stdout.
// The returned closer is a no-op for stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, f.Close, nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}

func renderYAML(w io.Writer, v any) error {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return eris.Wrap(err, "encode yaml")
	}
	_, err = w.Write(raw)
	return err
}

func renderBreakdown(w io.Writer, b *model.ScoreBreakdown, format string) error {
	switch format {
	case "json":
		return renderJSON(w, b)
	case "yaml":
		return renderYAML(w, b)
	case "table":
		return writeBreakdownTable(w, b)
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func writeBreakdownTable(w io.Writer, b *model.ScoreBreakdown) error {
	fmt.Fprintf(w, "Property %s", b.PropertyID)
	if b.Metro != "" {
		fmt.Fprintf(w, " (%s)", b.Metro)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSCORE\tCONFIDENCE")
	for _, cat := range model.Categories() {
		cs, ok := b.Categories[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2f / %.0f\t%.0f%%\n",
			titleCaser.String(string(cat)), cs.Score, model.MaxCategoryScore, cs.Confidence)
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "flush table")
	}

	fmt.Fprintf(w, "\nTotal: %.2f / %.0f  Grade: %s  Confidence: %s (%.0f%%)\n",
		b.Total, model.MaxTotalScore, b.Grade, b.ConfidenceLabel, b.Confidence)
	for _, warn := range b.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warn)
	}
	return nil
}

func renderComparison(w io.Writer, res *model.ComparisonResult, format string) error {
	switch format {
	case "json":
		return renderJSON(w, res)
	case "yaml":
		return renderYAML(w, res)
	case "table":
		return writeComparisonTable(w, res)
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func writeComparisonTable(w io.Writer, res *model.ComparisonResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CATEGORY\t%s\t%s\tWINNER\n", res.Property1.PropertyID, res.Property2.PropertyID)
	for _, cc := range res.Categories {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\n",
			titleCaser.String(string(cc.Category)), cc.Score1, cc.Score2, cc.Winner)
	}
	fmt.Fprintf(tw, "Total\t%.2f\t%.2f\t%s\n",
		res.Property1.Total, res.Property2.Total, res.OverallWinner)
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "flush table")
	}

	fmt.Fprintf(w, "\n%s\n", res.Summary)
	for _, d := range res.KeyDifferences {
		fmt.Fprintf(w, "  - %s\n", d)
	}
	for _, tr := range res.TradeOffs {
		fmt.Fprintf(w, "  ~ %s\n", tr)
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warn)
	}
	return nil
}

func renderBatch(w io.Writer, results []batch.Result, format string) error {
	switch format {
	case "json":
		type row struct {
			PropertyID string                `json:"property_id"`
			Breakdown  *model.ScoreBreakdown `json:"breakdown,omitempty"`
			Error      string                `json:"error,omitempty"`
		}
		rows := make([]row, len(results))
		for i, r := range results {
			rows[i] = row{PropertyID: r.PropertyID, Breakdown: r.Breakdown}
			if r.Err != nil {
				rows[i].Error = r.Err.Error()
			}
		}
		return renderJSON(w, rows)
	case "table":
		return writeBatchTable(w, results)
	default:
		return eris.Errorf("unsupported format %q", format)
	}
}

func writeBatchTable(w io.Writer, results []batch.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROPERTY\tTOTAL\tGRADE\tCONFIDENCE\tMETRO\tSTATUS")
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\tERROR: %v\n", r.PropertyID, r.Err)
			continue
		}
		b := r.Breakdown
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%.0f%%\t%s\tok\n",
			b.PropertyID, b.Total, b.Grade, b.Confidence, b.Metro)
	}
	if err := tw.Flush(); err != nil {
		return eris.Wrap(err, "flush table")
	}
	fmt.Fprintf(w, "\n%d scored, %d failed\n", len(results)-failed, failed)
	return nil
}
