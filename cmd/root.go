package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "deedscope",
	Short: "Deterministic investment scoring for tax-deed properties",
	Long:  "Scores tax-deed properties across five categories (location, risk, financial, market, profit), detects metro markets, and produces explained side-by-side comparisons.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
