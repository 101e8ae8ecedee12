package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/report"
	"github.com/riskplane/riskplane-core/pkg/scoring"
)

var topLimit int

func init() {
	topCmd.Flags().IntVar(&topLimit, "limit", 0, "Show at most N assets (0 shows all)")
	rootCmd.AddCommand(topCmd)
}

var topCmd = &cobra.Command{
	Use:   "top <assets.json> <events.json> [policy.json]",
	Short: "Show the highest-risk assets as a table",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(_ *cobra.Command, args []string) error {
		assets, events, pol, err := loadInputs(args)
		if err != nil {
			return err
		}

		engine := scoring.NewEngine(nil)
		rep, err := engine.Evaluate(context.Background(), assets, events, pol)
		if err != nil {
			return fmt.Errorf("scoring engine error: %w", err)
		}

		return report.RenderTable(os.Stdout, rep.Summary, topLimit)
	},
}
