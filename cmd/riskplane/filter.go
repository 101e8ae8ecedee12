package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/event"
)

var (
	filterType  string
	filterLabel string
	filterAsset string
)

func init() {
	filterCmd.Flags().StringVar(&filterType, "type", "", "Keep only events of this type")
	filterCmd.Flags().StringVar(&filterLabel, "label", "", "Keep only events carrying this label")
	filterCmd.Flags().StringVar(&filterAsset, "asset", "", "Keep only events for this asset id")

	rootCmd.AddCommand(filterCmd)
}

var filterCmd = &cobra.Command{
	Use:   "filter <events.json>",
	Short: "Filter an events file and print the matches as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		events := event.NewStore()
		if err := events.LoadFile(args[0]); err != nil {
			return err
		}

		matched := event.Filter(events.All(), event.Query{
			Type:  filterType,
			Label: filterLabel,
			Asset: filterAsset,
		})
		if matched == nil {
			matched = []event.Event{}
		}

		out := struct {
			Count int           `json:"count"`
			Items []event.Event `json:"items"`
		}{Count: len(matched), Items: matched}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	},
}
