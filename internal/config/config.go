// Package config reads riskplane configuration from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the CLI commands.
type Config struct {
	// PolicyPath is the policy file used when a command receives none.
	PolicyPath string

	// ReportOut is the default report output path.
	ReportOut string

	// HistoryPath is the SQLite run-history database file.
	HistoryPath string

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is loaded first when
// present.
func Load() Config {
	_ = godotenv.Load(".env")

	return Config{
		PolicyPath:  os.Getenv("RISKPLANE_POLICY"),
		ReportOut:   getenv("RISKPLANE_OUT", "risk.report.json"),
		HistoryPath: getenv("RISKPLANE_HISTORY_DB", DefaultHistoryPath()),
		LogLevel:    getenv("RISKPLANE_LOG_LEVEL", "info"),
	}
}

// DefaultHistoryPath returns the default run-history database location.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".riskplane", "history.db")
	}
	return filepath.Join(home, ".riskplane", "history.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
