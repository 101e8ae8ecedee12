package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/history"
)

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Show at most N runs")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output runs as JSON")

	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scoring runs",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		runs, err := store.Recent(context.Background(), historyLimit)
		if err != nil {
			return err
		}

		if historyJSON {
			if runs == nil {
				runs = []history.Run{}
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(runs)
		}

		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}
		for _, r := range runs {
			ts := time.Unix(r.TS, 0).UTC().Format(time.RFC3339)
			fmt.Printf("%s  %s  policy=%s/%s  assets=%d events=%d  top=%s (%.2f)\n",
				shortID(r.ID), ts, r.PolicyID, r.PolicyVersion,
				r.Assets, r.Events, r.TopAsset, r.TopScore)
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
