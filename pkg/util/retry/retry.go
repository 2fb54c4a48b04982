package retry

import (
	"context"
	"fmt"
	"time"

	"redfin-etl/pkg/log"
)

// Config controls how an operation is retried.
type Config struct {
	// MaxAttempts is the total number of tries, including the first one
	MaxAttempts int
	// Delay is the wait before the second attempt
	Delay time.Duration
	// Multiplier grows the delay after each failed attempt
	Multiplier float64
}

// NewConfig returns a config with conservative defaults.
func NewConfig() Config {
	return Config{
		MaxAttempts: 3,
		Delay:       30 * time.Second,
		Multiplier:  2,
	}
}

// WithMaxAttempts sets the total number of attempts.
func (c Config) WithMaxAttempts(maxAttempts int) Config {
	c.MaxAttempts = maxAttempts
	return c
}

// WithDelay sets the delay before the first retry.
func (c Config) WithDelay(delay time.Duration) Config {
	c.Delay = delay
	return c
}

// WithMultiplier sets the backoff growth factor.
func (c Config) WithMultiplier(multiplier float64) Config {
	c.Multiplier = multiplier
	return c
}

// Do runs fn until it succeeds, attempts run out, or the context is canceled.
// The returned error is the last attempt's error wrapped with the operation name.
func (c Config) Do(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	attempts := c.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := c.Delay
	if delay <= 0 {
		delay = time.Second
	}
	multiplier := c.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s canceled: %w", name, err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		log.Warnf("%s attempt %d/%d failed, retrying in %s: %v", name, attempt, attempts, delay, lastErr)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s canceled: %w", name, ctx.Err())
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * multiplier)
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
