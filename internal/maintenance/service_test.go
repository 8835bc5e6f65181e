package maintenance

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaulty/card-analyzer/internal/storage"
)

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPruneCacheKeepsFreshEntries(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store)

	require.NoError(t, store.SetAnalysisCache("a", &storage.AnalysisCacheEntry{AnalysisJSON: `{}`}))
	require.NoError(t, store.SetAnalysisCache("b", &storage.AnalysisCacheEntry{AnalysisJSON: `{}`}))

	svc.pruneCache()

	count, err := store.AnalysisCacheCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	svc := NewService(newTestStore(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("service did not stop after context cancellation")
	}
}
