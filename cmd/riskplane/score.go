package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/history"
	"github.com/riskplane/riskplane-core/pkg/report"
	"github.com/riskplane/riskplane-core/pkg/scoring"
)

var (
	scoreOut       string
	scoreJSON      bool
	scoreMinScore  float64
	scoreStrict    bool
	scoreNoHistory bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreOut, "out", "", "Report output path (default risk.report.json, or RISKPLANE_OUT)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Write the report to stdout instead of a file")
	scoreCmd.Flags().Float64Var(&scoreMinScore, "min-score", 0, "Drop per-event results below this score from the details")
	scoreCmd.Flags().BoolVar(&scoreStrict, "strict", false, "Report events referencing unknown assets as issues")
	scoreCmd.Flags().BoolVar(&scoreNoHistory, "no-history", false, "Skip recording the run in the history database")

	rootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score <assets.json> <events.json> [policy.json]",
	Short: "Score events against assets and write a risk report",
	Long: `Evaluate every event against the asset inventory using the policy's
rules, aggregate per-asset statistics, and write the full report as JSON.
Prints the report path on success.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(_ *cobra.Command, args []string) error {
		assets, events, pol, err := loadInputs(args)
		if err != nil {
			return err
		}

		engine := scoring.NewEngine(&scoring.EngineConfig{
			MinScore: scoreMinScore,
			Strict:   scoreStrict,
		})
		rep, err := engine.Evaluate(context.Background(), assets, events, pol)
		if err != nil {
			return fmt.Errorf("scoring engine error: %w", err)
		}

		if scoreJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(rep); err != nil {
				return err
			}
			recordRun(rep, assets.Len(), events.Len(), "")
			return nil
		}

		out := scoreOut
		if out == "" {
			out = cfg.ReportOut
		}
		if err := rep.WriteJSON(out); err != nil {
			return err
		}
		recordRun(rep, assets.Len(), events.Len(), out)
		fmt.Println(out)
		return nil
	},
}

// recordRun appends the run to the history database. History is best
// effort: failures are logged, never fatal for the scoring run itself.
func recordRun(rep *report.Report, assetCount, eventCount int, reportPath string) {
	if scoreNoHistory {
		return
	}

	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		slog.Warn("history unavailable", "path", cfg.HistoryPath, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	run := history.Run{
		PolicyID:      rep.Policy.ID,
		PolicyVersion: rep.Policy.Version,
		Assets:        assetCount,
		Events:        eventCount,
		ReportPath:    reportPath,
	}
	if top := rep.TopAsset(); top != nil {
		run.TopAsset = top.Asset
		run.TopScore = top.Max
	}
	if _, err := store.Record(context.Background(), run); err != nil {
		slog.Warn("failed to record run", "error", err)
	}
}
