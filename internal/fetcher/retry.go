package fetcher

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxRetries is the number of retries after the initial
	// attempt, so the worst case makes DefaultMaxRetries+1 calls.
	DefaultMaxRetries = 10

	// DefaultRetryDelay is the fixed wait between attempts. No backoff,
	// no jitter.
	DefaultRetryDelay = 1 * time.Second
)

// Policy describes the retry behavior applied uniformly to every error
// kind. Transport failures, bad statuses, and malformed bodies all retry
// identically.
type Policy struct {
	MaxRetries int
	Delay      time.Duration
}

// WithRetry invokes f.Fetch until it succeeds or the retry budget is
// exhausted, returning the last error as final. Each failed attempt short
// of the budget logs a retry notice and waits the fixed delay. The delay
// is cut short if ctx is cancelled, in which case the context error is
// returned.
func WithRetry(ctx context.Context, f Fetcher, address string, policy Policy) (float64, error) {
	retries := 0
	for {
		amount, err := f.Fetch(ctx)
		if err == nil {
			return amount, nil
		}
		if retries >= policy.MaxRetries {
			return 0, err
		}

		retries++
		logrus.Warnf("Retry %d/%d for address %s: %v", retries, policy.MaxRetries, address, err)

		timer := time.NewTimer(policy.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
}
