package http

import "time"

// BackoffConfig controls retries for requests executed through the client.
// A nil config means a single attempt.
type BackoffConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
}

// NewBackoffConfig returns a config with sane retry defaults.
func NewBackoffConfig() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:   3,
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   2,
	}
}

// WithMaxRetries sets how many retries happen after the first attempt.
func (b *BackoffConfig) WithMaxRetries(maxRetries int) *BackoffConfig {
	b.MaxRetries = maxRetries
	return b
}

// WithInitialDelay sets the delay before the first retry.
func (b *BackoffConfig) WithInitialDelay(delay time.Duration) *BackoffConfig {
	b.InitialDelay = delay
	return b
}

// WithMultiplier sets the factor applied to the delay after each retry.
func (b *BackoffConfig) WithMultiplier(multiplier float64) *BackoffConfig {
	b.Multiplier = multiplier
	return b
}

// normalized fills zero fields with defaults so a partially built config works.
func (b *BackoffConfig) normalized() BackoffConfig {
	out := *b
	if out.MaxRetries < 0 {
		out.MaxRetries = 0
	}
	if out.InitialDelay <= 0 {
		out.InitialDelay = 500 * time.Millisecond
	}
	if out.Multiplier < 1 {
		out.Multiplier = 2
	}

	return out
}

// shouldRetry reports whether a request outcome is worth another attempt.
// Transport errors and server side statuses are retryable, client errors are not.
func shouldRetry(statusCode int, err error) bool {
	if err != nil && statusCode == 0 {
		return true
	}

	return statusCode >= 500 || statusCode == 429
}
