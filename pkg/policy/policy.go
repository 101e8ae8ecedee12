// Package policy defines scoring policies: named collections of weighted
// rules that decide which events contribute risk and how much.
package policy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/riskplane/riskplane-core/internal/jsonx"
	"github.com/riskplane/riskplane-core/pkg/asset"
	"github.com/riskplane/riskplane-core/pkg/event"
)

// Policy is a versioned set of scoring rules.
type Policy struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules"`
}

// Rule scores events that satisfy its condition. The final contribution
// is clamped at zero and scaled by Weight.
type Rule struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Weight float64   `json:"weight"`
	When   Condition `json:"when"`
	Calc   Calc      `json:"calc"`
}

// Condition is the rule's match block. Every present clause must hold.
type Condition struct {
	EventType        []string     `json:"event_type,omitempty"`
	AssetType        []string     `json:"asset_type,omitempty"`
	AssetTagsAny     []string     `json:"asset_tags_any,omitempty"`
	EventLabelsAny   []string     `json:"event_labels_any,omitempty"`
	EventSeverityGTE *jsonx.Float `json:"event_severity_gte,omitempty"`
}

// IsEmpty reports whether no clause is set, meaning the condition
// matches every event.
func (c *Condition) IsEmpty() bool {
	return len(c.EventType) == 0 && len(c.AssetType) == 0 &&
		len(c.AssetTagsAny) == 0 && len(c.EventLabelsAny) == 0 &&
		c.EventSeverityGTE == nil
}

// Calc is the rule's score calculation block.
type Calc struct {
	Base           float64            `json:"base,omitempty"`
	MulSeverity    float64            `json:"mul_severity,omitempty"`
	MulCriticality float64            `json:"mul_criticality,omitempty"`
	IfLabelBonus   map[string]float64 `json:"if_label_bonus,omitempty"`
	IfTagBonus     map[string]float64 `json:"if_tag_bonus,omitempty"`
}

// Matches reports whether the rule applies to the asset/event pair.
func (r *Rule) Matches(a *asset.Asset, e *event.Event) bool {
	c := &r.When
	if len(c.EventType) > 0 && !contains(c.EventType, e.Type) {
		return false
	}
	if len(c.AssetType) > 0 && !contains(c.AssetType, a.Type) {
		return false
	}
	if len(c.AssetTagsAny) > 0 && !a.HasAnyTag(c.AssetTagsAny) {
		return false
	}
	if len(c.EventLabelsAny) > 0 && !e.HasAnyLabel(c.EventLabelsAny) {
		return false
	}
	if c.EventSeverityGTE != nil && e.Severity < float64(*c.EventSeverityGTE) {
		return false
	}
	return true
}

// Score computes the rule's contribution for a matching asset/event
// pair. Negative results clamp to zero.
func (r *Rule) Score(a *asset.Asset, e *event.Event) float64 {
	c := &r.Calc
	s := c.Base + e.Severity*c.MulSeverity + a.Criticality*c.MulCriticality
	for label, bonus := range c.IfLabelBonus {
		if e.HasLabel(label) {
			s += bonus
		}
	}
	for tag, bonus := range c.IfTagBonus {
		if a.HasTag(tag) {
			s += bonus
		}
	}
	s *= r.Weight
	if s < 0 {
		return 0
	}
	return s
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// wire shapes with pointer fields so absent values can default.
type policyDoc struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Version string    `json:"version"`
	Rules   []ruleDoc `json:"rules"`
}

type ruleDoc struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Weight *jsonx.Float `json:"weight"`
	When   Condition    `json:"when"`
	Calc   Calc         `json:"calc"`
}

// Parse decodes a policy document, applying defaults: generated ids,
// name falling back to id, version falling back to "1.0", and rule
// weight falling back to 1.0. Signed envelopes (see Sign) are unwrapped
// without verification; use Verify to check the signature.
func Parse(data []byte) (*Policy, error) {
	if env := probeEnvelope(data); env != nil {
		data = env.Policy
	}

	var doc policyDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}

	p := &Policy{
		ID:      doc.ID,
		Name:    doc.Name,
		Version: doc.Version,
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = p.ID
	}
	if p.Version == "" {
		p.Version = "1.0"
	}
	for _, rd := range doc.Rules {
		r := Rule{
			ID:     rd.ID,
			Name:   rd.Name,
			Weight: rd.Weight.Value(1.0),
			When:   rd.When,
			Calc:   rd.Calc,
		}
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		if r.Name == "" {
			r.Name = r.ID
		}
		p.Rules = append(p.Rules, r)
	}
	return p, nil
}

// LoadFile reads and parses a policy document, plain or signed.
func LoadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault loads the policy at path, falling back to Default on
// any error. The second return value reports whether the fallback was
// taken.
func LoadOrDefault(path string) (*Policy, bool) {
	p, err := LoadFile(path)
	if err != nil {
		return Default(), true
	}
	return p, false
}

// Default returns the built-in bootstrap policy used when no policy
// file is available.
func Default() *Policy {
	return &Policy{
		ID:      "default-policy",
		Name:    "Default Risk Policy",
		Version: "1.0",
		Rules: []Rule{
			{
				ID:     "sev-asset",
				Name:   "Severity and criticality",
				Weight: 1.0,
				When: Condition{
					EventType: []string{"alert", "anomaly", "incident"},
				},
				Calc: Calc{MulSeverity: 60, MulCriticality: 50},
			},
			{
				ID:     "label-bonus",
				Name:   "Label bonus",
				Weight: 1.0,
				When: Condition{
					EventLabelsAny: []string{"privilege_escalation", "exfil", "lateral"},
				},
				Calc: Calc{
					IfLabelBonus: map[string]float64{
						"privilege_escalation": 30,
						"exfil":                40,
						"lateral":              20,
					},
				},
			},
			{
				ID:     "tag-bonus",
				Name:   "Asset tag bonus",
				Weight: 1.0,
				When: Condition{
					AssetTagsAny: []string{"prod", "pci", "pii"},
				},
				Calc: Calc{
					Base: 10,
					IfTagBonus: map[string]float64{
						"prod": 20,
						"pci":  25,
						"pii":  25,
					},
				},
			},
		},
	}
}
