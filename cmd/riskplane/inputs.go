package main

import (
	"log/slog"

	"github.com/riskplane/riskplane-core/pkg/asset"
	"github.com/riskplane/riskplane-core/pkg/event"
	"github.com/riskplane/riskplane-core/pkg/policy"
)

// loadInputs loads the assets and events files from args[0] and args[1]
// and resolves the policy: args[2] when given, then RISKPLANE_POLICY,
// then the built-in default. An unusable policy file falls back to the
// default with a warning, so a scoring run never dies on a bad policy.
func loadInputs(args []string) (*asset.Store, *event.Store, *policy.Policy, error) {
	assets := asset.NewStore()
	if err := assets.LoadFile(args[0]); err != nil {
		return nil, nil, nil, err
	}

	events := event.NewStore()
	if err := events.LoadFile(args[1]); err != nil {
		return nil, nil, nil, err
	}

	path := cfg.PolicyPath
	if len(args) > 2 {
		path = args[2]
	}

	var pol *policy.Policy
	if path == "" {
		pol = policy.Default()
	} else {
		var fellBack bool
		pol, fellBack = policy.LoadOrDefault(path)
		if fellBack {
			slog.Warn("policy not usable, using built-in default", "path", path)
		}
	}
	return assets, events, pol, nil
}
