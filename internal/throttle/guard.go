// Package throttle enforces request spacing for quote operations.
//
// The guard is a debounce, not a queue: a call arriving before the minimum
// spacing has elapsed is dropped outright. After an upstream rate-limit
// signal a backoff deadline blocks every operation kind until it passes.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jgrier/quotd/internal/endpoint"
)

// Minimum spacing per operation kind. Random re-rolls are an expected
// interactive action, so they get the shortest interval.
const (
	todayInterval  = 5 * time.Second
	randomInterval = 1200 * time.Millisecond
	listInterval   = 30 * time.Second
)

// DefaultBackoff is applied after a rate-limit signal when the caller has
// no better number.
const DefaultBackoff = 12 * time.Second

// Guard tracks per-kind spacing and the global backoff deadline.
// In-memory only; state does not survive the session. Safe for use from
// the UI loop and command goroutines.
type Guard struct {
	now      func() time.Time
	limiters map[endpoint.Kind]*rate.Limiter

	mu           sync.Mutex
	backoffUntil time.Time
}

// New creates a Guard using the wall clock.
func New() *Guard {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Guard with an injected clock for tests.
func NewWithClock(now func() time.Time) *Guard {
	return &Guard{
		now: now,
		limiters: map[endpoint.Kind]*rate.Limiter{
			endpoint.Today:    rate.NewLimiter(rate.Every(todayInterval), 1),
			endpoint.Random:   rate.NewLimiter(rate.Every(randomInterval), 1),
			endpoint.FullList: rate.NewLimiter(rate.Every(listInterval), 1),
		},
	}
}

// Allow reports whether a call for the kind may proceed now, consuming the
// kind's token when it does. A false return means the call is dropped.
func (g *Guard) Allow(kind endpoint.Kind) bool {
	now := g.now()
	g.mu.Lock()
	blocked := now.Before(g.backoffUntil)
	g.mu.Unlock()
	if blocked {
		return false
	}

	lim, ok := g.limiters[kind]
	if !ok {
		return false
	}
	return lim.AllowN(now, 1)
}

// RecordRateLimited sets a backoff deadline blocking all kinds for the
// given duration, overriding per-kind spacing.
func (g *Guard) RecordRateLimited(backoff time.Duration) {
	g.mu.Lock()
	g.backoffUntil = g.now().Add(backoff)
	g.mu.Unlock()
}

// BackoffRemaining returns how long the current backoff deadline has left,
// or zero when none is active.
func (g *Guard) BackoffRemaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if remaining := g.backoffUntil.Sub(g.now()); remaining > 0 {
		return remaining
	}
	return 0
}
