// Package main is the entry point for the riskplane CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/internal/config"
	"github.com/riskplane/riskplane-core/internal/logging"
)

var (
	cfg         config.Config
	flagLogJSON bool
)

var rootCmd = &cobra.Command{
	Use:   "riskplane",
	Short: "Riskplane Core Engine CLI",
	Long: `The core engine for the riskplane risk scoring toolkit.
Evaluates security events against an asset inventory using rule policies,
and produces scored reports.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logging.Init(flagLogJSON, logging.ParseLevel(cfg.LogLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Emit logs as JSON")
}

func main() {
	cfg = config.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
