package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskplane/riskplane-core/pkg/asset"
	"github.com/riskplane/riskplane-core/pkg/event"
	"github.com/riskplane/riskplane-core/pkg/policy"
)

func TestValidateInputs_CleanProblem(t *testing.T) {
	assets, events := fixture()
	res := ValidateInputs(assets, events, policy.Default())

	assert.True(t, res.OK)
	assert.Empty(t, res.Issues)
}

func TestValidateInputs_EmptyInputs(t *testing.T) {
	res := ValidateInputs(asset.NewStore(), event.NewStore(), &policy.Policy{})

	assert.False(t, res.OK)

	got := make(map[string]bool)
	for _, issue := range res.Issues {
		got[issue.Code] = true
		assert.Equal(t, "error", issue.Severity)
	}
	assert.True(t, got["EMPTY_ASSETS"])
	assert.True(t, got["EMPTY_EVENTS"])
	assert.True(t, got["EMPTY_RULES"])
}

func TestValidateInputs_Warnings(t *testing.T) {
	assets := asset.NewStore()
	assets.Add(asset.Asset{ID: "a1", Criticality: 1.5})

	events := event.NewStore()
	events.Add(event.Event{ID: "e1", Asset: "a1", Severity: -0.2})
	events.Add(event.Event{ID: "e2", Asset: "missing", Severity: 0.5})

	pol, err := policy.Parse([]byte(`{
		"rules": [
			{"id": "dead", "weight": 0, "when": {"event_type": ["alert"]}},
			{"id": "open", "when": {}}
		]
	}`))
	require.NoError(t, err)

	res := ValidateInputs(assets, events, pol)

	// Warnings only, so the result still passes.
	assert.True(t, res.OK)

	got := make(map[string]int)
	for _, issue := range res.Issues {
		assert.Equal(t, "warning", issue.Severity)
		got[issue.Code]++
	}
	assert.Equal(t, 1, got["ZERO_WEIGHT"])
	assert.Equal(t, 1, got["EMPTY_CONDITION"])
	assert.Equal(t, 1, got["CRITICALITY_RANGE"])
	assert.Equal(t, 1, got["SEVERITY_RANGE"])
	assert.Equal(t, 1, got["UNKNOWN_ASSET"])
}
