package llm

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaulty/card-analyzer/internal/card"
)

// mockAnalyzer returns queued errors one per call, then succeeds with a
// fixed result.
type mockAnalyzer struct {
	calls  int
	errs   []error
	result *AnalysisResult
}

func (m *mockAnalyzer) AnalyzeCard(ctx context.Context, payload *card.ImagePayload) (*AnalysisResult, error) {
	m.calls++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return m.result, nil
}

func TestRetryingAnalyzerSucceedsAfterTransient(t *testing.T) {
	mock := &mockAnalyzer{
		errs: []error{
			fmt.Errorf("%w: connection reset", ErrTransport),
			fmt.Errorf("%w: rate limit exceeded (status: 429)", ErrRateLimited),
		},
		result: &AnalysisResult{Usage: Usage{InputTokens: 1}},
	}

	retrying := NewRetryingAnalyzer(mock).WithBaseDelay(time.Millisecond)
	result, err := retrying.AnalyzeCard(context.Background(), testPayload())
	require.NoError(t, err)
	assert.Same(t, mock.result, result)
	assert.Equal(t, 3, mock.calls)
}

func TestRetryingAnalyzerGivesUp(t *testing.T) {
	mock := &mockAnalyzer{
		errs: []error{
			fmt.Errorf("%w: boom", ErrTransport),
			fmt.Errorf("%w: boom", ErrTransport),
			fmt.Errorf("%w: boom", ErrTransport),
		},
	}

	retrying := NewRetryingAnalyzer(mock).WithBaseDelay(time.Millisecond)
	_, err := retrying.AnalyzeCard(context.Background(), testPayload())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 3, mock.calls)
}

func TestRetryingAnalyzerDoesNotRetryPermanentErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "auth", err: fmt.Errorf("%w: invalid x-api-key (status: 401)", ErrAuth)},
		{name: "timeout", err: fmt.Errorf("%w: context deadline exceeded", ErrTimeout)},
		{name: "empty response", err: ErrEmptyResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockAnalyzer{errs: []error{tt.err}}
			retrying := NewRetryingAnalyzer(mock).WithBaseDelay(time.Millisecond)
			_, err := retrying.AnalyzeCard(context.Background(), testPayload())
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, mock.calls)
		})
	}
}

func TestRetryingAnalyzerStopsOnContextDone(t *testing.T) {
	mock := &mockAnalyzer{
		errs: []error{fmt.Errorf("%w: boom", ErrTransport)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	retrying := NewRetryingAnalyzer(mock).WithBaseDelay(time.Minute)
	_, err := retrying.AnalyzeCard(ctx, testPayload())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.calls, "no further attempt once the context is done")
}

func TestRetryingAnalyzerMaxAttempts(t *testing.T) {
	mock := &mockAnalyzer{
		errs: []error{
			fmt.Errorf("%w: boom", ErrTransport),
			fmt.Errorf("%w: boom", ErrTransport),
		},
	}

	retrying := NewRetryingAnalyzer(mock).WithMaxAttempts(1).WithBaseDelay(time.Millisecond)
	_, err := retrying.AnalyzeCard(context.Background(), testPayload())
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 1, mock.calls)
}
