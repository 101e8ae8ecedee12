package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riskplane/riskplane-core/pkg/scoring"
)

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output results as JSON")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <assets.json> <events.json> [policy.json]",
	Short: "Validate scoring inputs",
	Long: `Check that the assets, events and policy form a usable scoring
problem. Empty inputs are errors; suspicious values (zero-weight rules,
out-of-range severities, events pointing at unknown assets) are warnings.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(_ *cobra.Command, args []string) error {
		assets, events, pol, err := loadInputs(args)
		if err != nil {
			return err
		}

		res := scoring.ValidateInputs(assets, events, pol)

		if validateJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(res); err != nil {
				return err
			}
			if !res.OK {
				os.Exit(1)
			}
			return nil
		}

		if res.OK {
			fmt.Println("✅ INPUT VALIDATION PASSED")
		} else {
			fmt.Println("❌ INPUT VALIDATION FAILED")
		}
		for _, issue := range res.Issues {
			icon := "⚠️"
			if issue.Severity == "error" {
				icon = "❌"
			}
			fmt.Printf("%s [%s] %s: %s\n", icon, issue.Code, issue.Severity, issue.Message)
		}

		if !res.OK {
			os.Exit(1)
		}
		return nil
	},
}
