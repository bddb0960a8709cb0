package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deedscope/research-cli/internal/metro"
	"github.com/deedscope/research-cli/internal/model"
)

var metroCmd = &cobra.Command{
	Use:   "metro",
	Short: "Inspect metro market detection",
}

var metroDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the metro for a location",
	Long: `Resolves coordinates and/or a county name to a metro market, using the
same logic the scoring engine applies.

Examples:
  deedscope metro detect --state GA --county Fulton
  deedscope metro detect --state FL --lat 25.76 --lng -80.19`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, _ := cmd.Flags().GetString("state")
		county, _ := cmd.Flags().GetString("county")
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")

		var coords *model.Coordinate
		if lat != 0 || lng != 0 {
			coords = &model.Coordinate{Lat: lat, Lng: lng}
		}

		name := metro.Detect(coords, county, strings.ToUpper(state))
		if name == "" {
			fmt.Println("no metro match")
			return nil
		}
		fmt.Println(name)
		return nil
	},
}

var metroNearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the nearest metro to a coordinate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		state, _ := cmd.Flags().GetString("state")
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")

		name, distKM, ok := metro.FindNearest(
			model.Coordinate{Lat: lat, Lng: lng}, strings.ToUpper(state))
		if !ok {
			fmt.Println("no metros defined for state")
			return nil
		}
		fmt.Printf("%s (%.1f km)\n", name, distKM)
		return nil
	},
}

var metroListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the defined metro markets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "METRO\tSTATE\tCOUNTIES")
		for _, d := range metro.List() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Name, d.State, strings.Join(d.Counties, ", "))
		}
		return tw.Flush()
	},
}

func init() {
	for _, c := range []*cobra.Command{metroDetectCmd, metroNearestCmd} {
		f := c.Flags()
		f.String("state", "", "two-letter state code (required)")
		f.String("county", "", "county name")
		f.Float64("lat", 0, "latitude")
		f.Float64("lng", 0, "longitude")
		_ = c.MarkFlagRequired("state")
	}

	metroCmd.AddCommand(metroDetectCmd, metroNearestCmd, metroListCmd)
	rootCmd.AddCommand(metroCmd)
}
