package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/asset"
	"github.com/riskplane/riskplane-core/pkg/event"
)

var (
	genAssetsOut string
	genEventsOut string
	genForce     bool
)

func init() {
	genCmd.Flags().StringVar(&genAssetsOut, "assets", "assets.sample.json", "Output path for the sample assets file")
	genCmd.Flags().StringVar(&genEventsOut, "events", "events.sample.json", "Output path for the sample events file")
	genCmd.Flags().BoolVar(&genForce, "force", false, "Overwrite existing files")

	rootCmd.AddCommand(genCmd)
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate sample assets and events files",
	Long: `Write a small sample asset inventory and event feed, useful for
trying out scoring and as a template for real input files.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		for _, path := range []string{genAssetsOut, genEventsOut} {
			if _, err := os.Stat(path); err == nil && !genForce {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}

		if err := writeDoc(genAssetsOut, sampleAssets()); err != nil {
			return err
		}
		if err := writeDoc(genEventsOut, sampleEvents()); err != nil {
			return err
		}

		fmt.Println(genAssetsOut)
		fmt.Println(genEventsOut)
		return nil
	},
}

type assetsDoc struct {
	Assets []asset.Asset `json:"assets"`
}

type eventsDoc struct {
	Events []event.Event `json:"events"`
}

func sampleAssets() assetsDoc {
	return assetsDoc{Assets: []asset.Asset{
		{ID: "srv-1", Name: "srv-1", Type: "vm", Tags: []string{"prod", "pci"}, Criticality: 0.9},
		{ID: "srv-2", Name: "srv-2", Type: "vm", Tags: []string{"dev"}, Criticality: 0.4},
		{ID: "db-1", Name: "db-1", Type: "db", Tags: []string{"prod", "pii"}, Criticality: 0.95},
	}}
}

func sampleEvents() eventsDoc {
	now := time.Now().Unix()
	return eventsDoc{Events: []event.Event{
		{ID: "e1", TS: now, Asset: "srv-1", Type: "alert", Severity: 0.8, Labels: []string{"exfil"}},
		{ID: "e2", TS: now, Asset: "db-1", Type: "anomaly", Severity: 0.6, Labels: []string{"lateral"}},
		{ID: "e3", TS: now, Asset: "srv-2", Type: "incident", Severity: 0.3},
	}}
}

func writeDoc(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
