package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deedscope/research-cli/internal/server"
	"github.com/deedscope/research-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scoring HTTP API",
	Long: `Serves the scoring engine over HTTP: POST /api/v1/score,
POST /api/v1/compare, metro lookups under /api/v1/metros, and saved
results under /api/v1/breakdowns and /api/v1/comparisons.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var st store.Store
		noStore, _ := cmd.Flags().GetBool("no-store")
		if !noStore {
			var err error
			st, err = openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		serverCfg := cfg.Server
		if servePort != 0 {
			serverCfg.Port = servePort
		}

		srv := server.New(serverCfg, cfg.Comparison.MinConfidenceThreshold, st)
		if err := srv.Run(ctx); err != nil {
			return err
		}

		zap.L().Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().Bool("no-store", false, "run without persistence endpoints")
	rootCmd.AddCommand(serveCmd)
}
