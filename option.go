package crosspay

import (
	"github.com/rishav-eulb/crosspay/logger"
	"github.com/rishav-eulb/crosspay/metrics"
	"github.com/rishav-eulb/crosspay/retry"
	"github.com/rishav-eulb/crosspay/watcher"
)

type Option func(*CrossPay)

func WithLogger(l logger.Logger) Option {
	return func(c *CrossPay) {
		c.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(c *CrossPay) {
		c.metrics = r
	}
}

// WithClock overrides the watcher's clock. Intended for tests.
func WithClock(clock watcher.Clock) Option {
	return func(c *CrossPay) {
		c.clock = clock
	}
}

// WithReadRetry sets the retry policy for balance and metadata reads. Fund
// moves are never retried.
func WithReadRetry(p retry.Policy) Option {
	return func(c *CrossPay) {
		c.retry = p
	}
}
