package scoring

import (
	"fmt"

	"github.com/riskplane/riskplane-core/pkg/asset"
	"github.com/riskplane/riskplane-core/pkg/event"
	"github.com/riskplane/riskplane-core/pkg/policy"
	"github.com/riskplane/riskplane-core/pkg/report"
)

// ValidateInputs checks that the loaded documents form a usable scoring
// problem. Empty inputs are errors; suspicious values are warnings.
func ValidateInputs(assets *asset.Store, events *event.Store, pol *policy.Policy) *report.ValidationResult {
	res := &report.ValidationResult{OK: true}

	if assets.Len() == 0 {
		res.AddError("EMPTY_ASSETS", "no assets loaded", "assets")
	}
	if events.Len() == 0 {
		res.AddError("EMPTY_EVENTS", "no events loaded", "events")
	}
	if len(pol.Rules) == 0 {
		res.AddError("EMPTY_RULES", "policy has no rules", "policy.rules")
	}

	for i := range pol.Rules {
		r := &pol.Rules[i]
		if r.Weight == 0 {
			res.AddWarning("ZERO_WEIGHT", fmt.Sprintf("rule %s has zero weight and never contributes", r.ID), fmt.Sprintf("policy.rules[%d].weight", i))
		}
		if r.When.IsEmpty() {
			res.AddWarning("EMPTY_CONDITION", fmt.Sprintf("rule %s has no condition and matches every event", r.ID), fmt.Sprintf("policy.rules[%d].when", i))
		}
	}

	for _, a := range assets.All() {
		if a.Criticality < 0 || a.Criticality > 1 {
			res.AddWarning("CRITICALITY_RANGE", fmt.Sprintf("asset %s criticality %.2f is outside [0,1]", a.ID, a.Criticality), "assets")
		}
	}

	for _, e := range events.All() {
		if e.Severity < 0 || e.Severity > 1 {
			res.AddWarning("SEVERITY_RANGE", fmt.Sprintf("event %s severity %.2f is outside [0,1]", e.ID, e.Severity), "events")
		}
		if _, err := assets.Get(e.Asset); err != nil {
			res.AddWarning("UNKNOWN_ASSET", fmt.Sprintf("event %s references unknown asset %q", e.ID, e.Asset), "events")
		}
	}

	return res
}
