package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAnalysisCacheRoundTrip(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetAnalysisCache("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	entry := &AnalysisCacheEntry{
		AnalysisJSON: `{"description":"1952 Topps Mantle"}`,
		Model:        "claude-sonnet-4-20250514",
	}
	require.NoError(t, store.SetAnalysisCache("hash1", entry))

	got, err = store.GetAnalysisCache("hash1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry.AnalysisJSON, got.AnalysisJSON)
	assert.Equal(t, entry.Model, got.Model)

	// Upsert replaces the payload
	require.NoError(t, store.SetAnalysisCache("hash1", &AnalysisCacheEntry{AnalysisJSON: `{}`, Model: "gemini-3-flash-preview"}))
	got, err = store.GetAnalysisCache("hash1")
	require.NoError(t, err)
	assert.Equal(t, `{}`, got.AnalysisJSON)
	assert.Equal(t, "gemini-3-flash-preview", got.Model)
}

func TestPruneAnalysisCache(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SetAnalysisCache("old", &AnalysisCacheEntry{AnalysisJSON: `{}`}))
	require.NoError(t, store.SetAnalysisCache("fresh", &AnalysisCacheEntry{AnalysisJSON: `{}`}))

	// Age one entry past the prune horizon
	_, err := store.db.Exec(
		"UPDATE analysis_cache SET created_at = ? WHERE image_hash = ?",
		time.Now().Add(-48*time.Hour), "old",
	)
	require.NoError(t, err)

	pruned, err := store.PruneAnalysisCache(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	count, err := store.AnalysisCacheCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	got, err := store.GetAnalysisCache("old")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = store.GetAnalysisCache("fresh")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestUsageLog(t *testing.T) {
	store := newTestStore(t)

	totals, err := store.UsageSummary(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.Analyses)

	require.NoError(t, store.RecordUsage(&UsageRecord{
		TelegramID:   42,
		Model:        "claude-sonnet-4-20250514",
		InputTokens:  1500,
		OutputTokens: 600,
		CostUSD:      0.0135,
	}))
	require.NoError(t, store.RecordUsage(&UsageRecord{
		Model:        "claude-sonnet-4-20250514",
		InputTokens:  1400,
		OutputTokens: 500,
		CostUSD:      0.0117,
	}))

	totals, err = store.UsageSummary(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Analyses)
	assert.Equal(t, int64(2900), totals.InputTokens)
	assert.Equal(t, int64(1100), totals.OutputTokens)
	assert.InDelta(t, 0.0252, totals.CostUSD, 1e-9)
}

func TestUsageSummarySince(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordUsage(&UsageRecord{Model: "m", InputTokens: 100, OutputTokens: 10, CostUSD: 0.001}))
	require.NoError(t, store.RecordUsage(&UsageRecord{Model: "m", InputTokens: 200, OutputTokens: 20, CostUSD: 0.002}))

	// Move one record outside the window
	_, err := store.db.Exec(
		"UPDATE usage_log SET created_at = ? WHERE input_tokens = 100",
		time.Now().Add(-48*time.Hour),
	)
	require.NoError(t, err)

	totals, err := store.UsageSummary(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Analyses)
	assert.Equal(t, int64(200), totals.InputTokens)

	totals, err = store.UsageSummary(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.Analyses)
}
