// Package ratelimit paces probes against the target. All navigations
// and form submissions share one global limiter so a scan never hits a
// site harder than configured.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles probe operations.
type Limiter struct {
	mu          sync.Mutex
	limiter     *rate.Limiter
	probeDelay  time.Duration
	lastProbe   time.Time
}

// NewLimiter creates a limiter allowing requestsPerSecond with the
// given burst.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Wait blocks until the next probe is allowed or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	delay := l.probeDelay
	last := l.lastProbe
	l.mu.Unlock()

	if delay > 0 && !last.IsZero() {
		if elapsed := time.Since(last); elapsed < delay {
			select {
			case <-time.After(delay - elapsed):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	l.mu.Lock()
	l.lastProbe = time.Now()
	l.mu.Unlock()
	return nil
}

// Allow reports whether a probe may proceed right now, without
// blocking.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// SetRate updates the rate limit.
func (l *Limiter) SetRate(requestsPerSecond float64, burst int) {
	l.limiter.SetLimit(rate.Limit(requestsPerSecond))
	l.limiter.SetBurst(burst)
}

// SetProbeDelay sets a minimum spacing between consecutive probes, on
// top of the token bucket.
func (l *Limiter) SetProbeDelay(delay time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.probeDelay = delay
}
