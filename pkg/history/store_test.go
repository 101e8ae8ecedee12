package history_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskplane/riskplane-core/pkg/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, history.Run{
		TS:            1700000000,
		PolicyID:      "default-policy",
		PolicyVersion: "1.0",
		Assets:        3,
		Events:        3,
		TopAsset:      "srv-1",
		TopScore:      188,
		ReportPath:    "risk.report.json",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID, "id is generated")

	second, err := store.Record(ctx, history.Run{
		TS:       1700000100,
		PolicyID: "default-policy",
		TopAsset: "db-1",
		TopScore: 158.5,
	})
	require.NoError(t, err)

	runs, err := store.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)

	assert.Equal(t, "srv-1", runs[1].TopAsset)
	assert.InDelta(t, 188, runs[1].TopScore, 1e-9)
	assert.Equal(t, 3, runs[1].Assets)
	assert.Equal(t, "risk.report.json", runs[1].ReportPath)
}

func TestStore_RecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Record(ctx, history.Run{TS: int64(1700000000 + i)})
		require.NoError(t, err)
	}

	runs, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, int64(1700000004), runs[0].TS)
}

func TestStore_RecentEmpty(t *testing.T) {
	store := openStore(t)

	runs, err := store.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deep", "history.db")

	store, err := history.Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}
