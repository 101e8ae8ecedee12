// Package history persists scoring run records in a local SQLite
// database so past results can be listed without re-reading reports.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs(
	id TEXT PRIMARY KEY,
	ts INTEGER NOT NULL,
	policy_id TEXT,
	policy_version TEXT,
	assets INTEGER,
	events INTEGER,
	top_asset TEXT,
	top_score REAL,
	report_path TEXT
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts);
`

// Run is one recorded scoring run.
type Run struct {
	ID            string  `json:"id"`
	TS            int64   `json:"ts"`
	PolicyID      string  `json:"policy_id"`
	PolicyVersion string  `json:"policy_version"`
	Assets        int     `json:"assets"`
	Events        int     `json:"events"`
	TopAsset      string  `json:"top_asset,omitempty"`
	TopScore      float64 `json:"top_score"`
	ReportPath    string  `json:"report_path,omitempty"`
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dsn := "file:" + path + "?_pragma=busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run. Empty id and timestamp are filled in.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.TS == 0 {
		run.TS = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(id, ts, policy_id, policy_version, assets, events, top_asset, top_score, report_path)
		 VALUES(?,?,?,?,?,?,?,?,?)`,
		run.ID, run.TS, run.PolicyID, run.PolicyVersion,
		run.Assets, run.Events, run.TopAsset, run.TopScore, run.ReportPath)
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, policy_id, policy_version, assets, events, top_asset, top_score, report_path
		 FROM runs ORDER BY ts DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.TS, &r.PolicyID, &r.PolicyVersion,
			&r.Assets, &r.Events, &r.TopAsset, &r.TopScore, &r.ReportPath); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
