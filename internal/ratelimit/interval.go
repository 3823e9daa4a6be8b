// Package ratelimit provides the process-wide gate that spaces outbound
// provider requests.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Interval grants permits no closer together than a fixed minimum interval,
// shared across every concurrent caller. One instance is constructed at
// startup and handed to all resolution tasks; the backing limiter serializes
// grants, so concurrent Acquire calls cannot double-grant within an interval.
type Interval struct {
	limiter *rate.Limiter
}

// NewInterval creates a gate with the given minimum spacing between permits.
// A zero or negative interval disables pacing entirely.
func NewInterval(minInterval time.Duration) *Interval {
	if minInterval <= 0 {
		return &Interval{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	// Burst of 1 keeps consecutive grants at least minInterval apart.
	return &Interval{limiter: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Acquire blocks until the minimum-interval invariant permits another grant,
// or the context is done.
func (i *Interval) Acquire(ctx context.Context) error {
	return i.limiter.Wait(ctx)
}
