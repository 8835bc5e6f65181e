package llm

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vaulty/card-analyzer/internal/card"
)

const (
	// DefaultMaxAttempts is the total number of tries, first call included.
	DefaultMaxAttempts = 3
	// DefaultRetryBaseDelay is the wait before the first retry. It doubles
	// on each further retry.
	DefaultRetryBaseDelay = 2 * time.Second
)

// RetryingAnalyzer wraps an Analyzer and retries transient failures with
// exponential backoff. Only rate limiting and transport failures count as
// transient; auth failures, timeouts and empty replies surface
// immediately.
type RetryingAnalyzer struct {
	analyzer    Analyzer
	maxAttempts int
	baseDelay   time.Duration
}

// NewRetryingAnalyzer wraps analyzer with default retry settings.
func NewRetryingAnalyzer(analyzer Analyzer) *RetryingAnalyzer {
	return &RetryingAnalyzer{
		analyzer:    analyzer,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultRetryBaseDelay,
	}
}

// WithMaxAttempts sets how many tries are made in total.
func (r *RetryingAnalyzer) WithMaxAttempts(n int) *RetryingAnalyzer {
	if n > 0 {
		r.maxAttempts = n
	}
	return r
}

// WithBaseDelay sets the wait before the first retry.
func (r *RetryingAnalyzer) WithBaseDelay(d time.Duration) *RetryingAnalyzer {
	if d > 0 {
		r.baseDelay = d
	}
	return r
}

// AnalyzeCard calls the wrapped analyzer, backing off and retrying when
// the failure looks transient.
func (r *RetryingAnalyzer) AnalyzeCard(ctx context.Context, payload *card.ImagePayload) (*AnalysisResult, error) {
	var lastErr error
	delay := r.baseDelay

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		if attempt > 1 {
			log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Dur("delay", delay).
				Msg("retrying analysis")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		result, err := r.analyzer.AnalyzeCard(ctx, payload)
		if err == nil {
			return result, nil
		}
		if !isRetryable(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func isRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTransport)
}
