package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter gates request dispatch against the single upstream API.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerSecond dispatches. A zero or
// negative rate disables limiting entirely.
func New(requestsPerSecond float64) *Limiter {
	if requestsPerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1)}
}

// Wait blocks until the limiter permits a dispatch. It returns an error
// if the context is canceled before the event can proceed.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a dispatch may happen now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
