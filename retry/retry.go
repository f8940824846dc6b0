// Package retry provides an explicit, injectable retry policy for remote
// calls. It is applied to idempotent reads only; fund-moving submissions
// (approve, bridge send, transfer) are never retried blindly.
package retry

import (
	"context"
	"fmt"
	"time"
)

// BackoffFunc returns the pause before the given attempt (1-based).
type BackoffFunc func(attempt int) time.Duration

// Policy bounds retries of a remote call.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	// Zero or one means no retry.
	MaxAttempts int

	// Backoff computes the pause before each retry. Nil means no pause.
	Backoff BackoffFunc
}

// None performs a single attempt.
var None = Policy{MaxAttempts: 1}

// ConstantBackoff pauses the same duration before every retry.
func ConstantBackoff(d time.Duration) BackoffFunc {
	return func(int) time.Duration { return d }
}

// ExponentialBackoff doubles the base pause with each retry.
func ExponentialBackoff(base time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		return base << (attempt - 1)
	}
}

// Do runs fn until it succeeds, the policy is exhausted, or the context is
// done. The last error is returned wrapped with the attempt count.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && p.Backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff(attempt - 1)):
			}
		}

		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if attempts == 1 {
		return lastErr
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
