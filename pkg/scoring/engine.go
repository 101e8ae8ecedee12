// Package scoring implements the risk evaluation engine: it applies a
// policy's rules to every event and aggregates scores per asset.
package scoring

import (
	"context"
	"time"

	"github.com/riskplane/riskplane-core/pkg/asset"
	"github.com/riskplane/riskplane-core/pkg/event"
	"github.com/riskplane/riskplane-core/pkg/policy"
	"github.com/riskplane/riskplane-core/pkg/report"
)

// EngineConfig holds configuration for the scoring Engine.
type EngineConfig struct {
	// MinScore drops per-event results scoring below the threshold from
	// the report details. Zero keeps everything.
	MinScore float64

	// Strict turns events referencing unknown assets into report issues
	// instead of silently skipping them.
	Strict bool
}

// DefaultEngineConfig returns a default configuration.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{}
}

// Engine evaluates events against a policy.
type Engine struct {
	config *EngineConfig
}

// NewEngine creates a new scoring Engine with the provided
// configuration. If config is nil, default configuration is used.
func NewEngine(config *EngineConfig) *Engine {
	if config == nil {
		config = DefaultEngineConfig()
	}
	return &Engine{config: config}
}

// Evaluate scores every event against the policy and returns the full
// report: per-event details plus per-asset aggregates, summary sorted
// by max score.
func (e *Engine) Evaluate(ctx context.Context, assets *asset.Store, events *event.Store, pol *policy.Policy) (*report.Report, error) {
	rep := &report.Report{
		GeneratedAt: time.Now().Unix(),
		Policy: report.PolicyRef{
			ID:      pol.ID,
			Name:    pol.Name,
			Version: pol.Version,
		},
	}

	byAsset := make(map[string][]float64)

	for _, ev := range events.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a, err := assets.Get(ev.Asset)
		if err != nil {
			if e.config.Strict {
				rep.Issues = append(rep.Issues, report.Issue{
					Code:     "UNKNOWN_ASSET",
					Message:  "event " + ev.ID + " references unknown asset " + ev.Asset,
					Severity: "warning",
					Field:    "events",
				})
			}
			continue
		}

		total := 0.0
		var applied []report.AppliedRule
		for i := range pol.Rules {
			r := &pol.Rules[i]
			if !r.Matches(a, &ev) {
				continue
			}
			val := r.Score(a, &ev)
			if val == 0 {
				continue
			}
			applied = append(applied, report.AppliedRule{
				Rule:  r.ID,
				Name:  r.Name,
				Score: val,
			})
			total += val
		}

		byAsset[a.ID] = append(byAsset[a.ID], total)

		if total < e.config.MinScore {
			continue
		}
		rep.Details = append(rep.Details, report.EventScore{
			Event:   ev.ID,
			Asset:   a.ID,
			TS:      ev.TS,
			Score:   total,
			Applied: applied,
		})
	}

	for id, vals := range byAsset {
		agg := Aggregate(vals)
		summary := report.AssetSummary{
			Asset: id,
			Name:  id,
			Count: agg.Count,
			Sum:   agg.Sum,
			Avg:   agg.Avg,
			Max:   agg.Max,
			P95:   agg.P95,
			P99:   agg.P99,
		}
		if a, err := assets.Get(id); err == nil {
			summary.Name = a.Name
			summary.Type = a.Type
		}
		rep.Summary = append(rep.Summary, summary)
	}
	rep.SortSummary()

	return rep, nil
}
