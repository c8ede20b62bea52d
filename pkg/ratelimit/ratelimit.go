// Package ratelimit paces outbound generation calls so the free API
// tier is not exhausted by rapid-fire questions.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum interval between remote calls.
type Pacer struct {
	limiter *rate.Limiter
}

// New creates a pacer allowing one call per interval, with an initial
// burst of one so the first request is never delayed. A zero interval
// returns nil; callers treat a nil pacer as disabled.
func New(interval time.Duration) *Pacer {
	if interval <= 0 {
		return nil
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the next call is allowed, or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}

// Allow reports whether a call may proceed right now without waiting.
func (p *Pacer) Allow() bool {
	if p == nil {
		return true
	}
	return p.limiter.Allow()
}
