package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RISKPLANE_POLICY", "")
	t.Setenv("RISKPLANE_OUT", "")
	t.Setenv("RISKPLANE_HISTORY_DB", "")
	t.Setenv("RISKPLANE_LOG_LEVEL", "")

	cfg := Load()

	assert.Empty(t, cfg.PolicyPath)
	assert.Equal(t, "risk.report.json", cfg.ReportOut)
	assert.Equal(t, DefaultHistoryPath(), cfg.HistoryPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RISKPLANE_POLICY", "/etc/riskplane/policy.json")
	t.Setenv("RISKPLANE_OUT", "/tmp/report.json")
	t.Setenv("RISKPLANE_HISTORY_DB", "/tmp/history.db")
	t.Setenv("RISKPLANE_LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, "/etc/riskplane/policy.json", cfg.PolicyPath)
	assert.Equal(t, "/tmp/report.json", cfg.ReportOut)
	assert.Equal(t, "/tmp/history.db", cfg.HistoryPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestDefaultHistoryPath(t *testing.T) {
	assert.Contains(t, DefaultHistoryPath(), ".riskplane")
}
