// Package report defines the structures for scoring reports and
// validation results.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Report is the full output of a scoring run.
type Report struct {
	GeneratedAt int64          `json:"generated_at"`
	Policy      PolicyRef      `json:"policy"`
	Summary     []AssetSummary `json:"summary"`
	Details     []EventScore   `json:"details"`
	Issues      []Issue        `json:"issues,omitempty"`
}

// PolicyRef identifies the policy a report was produced with.
type PolicyRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// EventScore is the scored outcome of a single event.
type EventScore struct {
	Event   string        `json:"event"`
	Asset   string        `json:"asset"`
	TS      int64         `json:"ts"`
	Score   float64       `json:"score"`
	Applied []AppliedRule `json:"applied"`
}

// AppliedRule records one rule's non-zero contribution to an event score.
type AppliedRule struct {
	Rule  string  `json:"rule"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// AssetSummary aggregates the per-event scores attributed to one asset.
type AssetSummary struct {
	Asset string  `json:"asset"`
	Name  string  `json:"name"`
	Type  string  `json:"type,omitempty"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
}

// Issue represents a specific problem found while scoring or validating.
type Issue struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
	Field    string `json:"field,omitempty"`
}

// ValidationResult is the outcome of input validation.
type ValidationResult struct {
	OK     bool    `json:"ok"`
	Issues []Issue `json:"issues,omitempty"`
}

// AddError adds an error issue and marks the result as failed.
func (r *ValidationResult) AddError(code, message, field string) {
	r.Issues = append(r.Issues, Issue{
		Code:     code,
		Message:  message,
		Severity: "error",
		Field:    field,
	})
	r.OK = false
}

// AddWarning adds a warning issue without failing the result.
func (r *ValidationResult) AddWarning(code, message, field string) {
	r.Issues = append(r.Issues, Issue{
		Code:     code,
		Message:  message,
		Severity: "warning",
		Field:    field,
	})
}

// SortSummary orders the summary by max score descending, then average
// descending, then asset id ascending. The ordering is deterministic.
func (r *Report) SortSummary() {
	sort.Slice(r.Summary, func(i, j int) bool {
		a, b := r.Summary[i], r.Summary[j]
		if a.Max != b.Max {
			return a.Max > b.Max
		}
		if a.Avg != b.Avg {
			return a.Avg > b.Avg
		}
		return a.Asset < b.Asset
	})
}

// TopAsset returns the highest-ranked summary entry, or nil for an
// empty report. Call SortSummary first.
func (r *Report) TopAsset() *AssetSummary {
	if len(r.Summary) == 0 {
		return nil
	}
	return &r.Summary[0]
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
