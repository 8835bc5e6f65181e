package llm

import "errors"

// Failure categories for a vision call. Providers wrap these with detail
// so callers can branch with errors.Is while keeping the underlying
// message for logs.
var (
	// ErrAuth means credentials are missing or were rejected by the provider.
	ErrAuth = errors.New("invalid or missing API credentials")
	// ErrRateLimited means the provider signalled throttling.
	ErrRateLimited = errors.New("rate limited by provider")
	// ErrTimeout means the analysis call exceeded its deadline.
	ErrTimeout = errors.New("analysis timed out")
	// ErrTransport covers network-level and unexpected provider failures.
	ErrTransport = errors.New("transport error")
	// ErrEmptyResponse means the model reply was empty or nothing could be
	// extracted from it.
	ErrEmptyResponse = errors.New("empty response from model")
)
