package llm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaulty/card-analyzer/internal/card"
	"github.com/vaulty/card-analyzer/internal/storage"
)

// failingStore errors on every cache operation.
type failingStore struct{}

func (failingStore) GetAnalysisCache(string) (*storage.AnalysisCacheEntry, error) {
	return nil, errors.New("db closed")
}

func (failingStore) SetAnalysisCache(string, *storage.AnalysisCacheEntry) error {
	return errors.New("db closed")
}

func (failingStore) PruneAnalysisCache(time.Duration) (int64, error) {
	return 0, errors.New("db closed")
}

func (failingStore) AnalysisCacheCount() (int64, error) { return 0, errors.New("db closed") }

func (failingStore) RecordUsage(*storage.UsageRecord) error { return errors.New("db closed") }

func (failingStore) UsageSummary(time.Time) (*storage.UsageTotals, error) {
	return nil, errors.New("db closed")
}

func (failingStore) Close() error { return nil }

func analyzedCard() *AnalysisResult {
	player := "Mike Trout"
	return &AnalysisResult{
		Analysis: &card.Analysis{
			Identity: card.Identity{Player: &player},
			RawText:  "Player: Mike Trout",
		},
		Usage: Usage{
			Model:        anthropicModel,
			InputTokens:  1000,
			OutputTokens: 200,
			TotalTokens:  1200,
			CostUSD:      0.006,
		},
	}
}

func TestCachedAnalyzerMissThenHit(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	mock := &mockAnalyzer{result: analyzedCard()}
	cached := NewCachedAnalyzer(mock, store)

	first, err := cached.AnalyzeCard(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls)
	assert.Equal(t, int64(1200), first.Usage.TotalTokens)

	entry, err := store.GetAnalysisCache(hashPayload(testPayload()))
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, anthropicModel, entry.Model)

	second, err := cached.AnalyzeCard(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, 1, mock.calls, "second call must come from the cache")
	assert.Equal(t, "Mike Trout", *second.Analysis.Identity.Player)
	assert.Equal(t, "Player: Mike Trout", second.Analysis.RawText)
	assert.Equal(t, Usage{}, second.Usage, "cached results carry no token usage")
}

func TestCachedAnalyzerNilStore(t *testing.T) {
	mock := &mockAnalyzer{result: analyzedCard()}
	cached := NewCachedAnalyzer(mock, nil)

	for i := 0; i < 2; i++ {
		_, err := cached.AnalyzeCard(context.Background(), testPayload())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, mock.calls)
}

func TestCachedAnalyzerStoreFailureFallsThrough(t *testing.T) {
	mock := &mockAnalyzer{result: analyzedCard()}
	cached := NewCachedAnalyzer(mock, failingStore{})

	result, err := cached.AnalyzeCard(context.Background(), testPayload())
	require.NoError(t, err, "cache trouble must not fail the analysis")
	assert.Equal(t, "Mike Trout", *result.Analysis.Identity.Player)

	_, err = cached.AnalyzeCard(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Equal(t, 2, mock.calls)
}

func TestCachedAnalyzerPropagatesError(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	mock := &mockAnalyzer{errs: []error{fmt.Errorf("%w: boom", ErrTransport)}}
	cached := NewCachedAnalyzer(mock, store)

	_, err = cached.AnalyzeCard(context.Background(), testPayload())
	assert.ErrorIs(t, err, ErrTransport)

	entry, err := store.GetAnalysisCache(hashPayload(testPayload()))
	require.NoError(t, err)
	assert.Nil(t, entry, "failed analyses must not be cached")
}

func TestHashPayload(t *testing.T) {
	a := &card.ImagePayload{Data: []byte("image a"), MIMEType: "image/jpeg"}
	b := &card.ImagePayload{Data: []byte("image b"), MIMEType: "image/jpeg"}

	assert.Len(t, hashPayload(a), 64)
	assert.Equal(t, hashPayload(a), hashPayload(a))
	assert.NotEqual(t, hashPayload(a), hashPayload(b))
}
