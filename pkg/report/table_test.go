package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	summary := []AssetSummary{
		{Asset: "srv-1", Name: "web server", Avg: 188, Max: 188, Count: 1},
		{Asset: "db-1", Name: "db-1", Avg: 158.5, Max: 158.5, Count: 1},
	}

	var sb strings.Builder
	require.NoError(t, RenderTable(&sb, summary, 0))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 4, "header, separator, two rows")

	assert.True(t, strings.HasPrefix(lines[0], "asset"))
	assert.Contains(t, lines[0], "count")
	assert.Contains(t, lines[1], "---")
	assert.Contains(t, lines[2], "srv-1")
	assert.Contains(t, lines[2], "188.00")
	assert.Contains(t, lines[3], "158.50")

	// Columns line up: every row starts its name column at the same offset.
	nameCol := strings.Index(lines[0], "name")
	assert.Equal(t, nameCol, strings.Index(lines[2], "web server"))
}

func TestRenderTable_Limit(t *testing.T) {
	summary := []AssetSummary{
		{Asset: "a"}, {Asset: "b"}, {Asset: "c"},
	}

	var sb strings.Builder
	require.NoError(t, RenderTable(&sb, summary, 2))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
}

func TestRenderTable_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, RenderTable(&sb, nil, 0))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	assert.Len(t, lines, 2, "header and separator only")
}
