package scrape

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces successive article fetches against a single host using a
// token bucket. The first wait returns immediately; each subsequent wait
// blocks until the configured delay has elapsed since the previous one.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer enforcing the given minimum delay between
// fetches. A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next fetch is allowed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
