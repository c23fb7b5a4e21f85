// Package pick implements random quote selection with repeat avoidance.
//
// A "new random quote" request should not hand back something the user just
// saw. The picker remembers the last few shown texts in a bounded FIFO ring
// and walks a small state machine: one network fetch, one retry with a fresh
// cache-buster on repeat, then a uniform draw from the day's full list.
package pick

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"github.com/jgrier/quotd/internal/fetch"
	"github.com/jgrier/quotd/internal/logging"
	"github.com/jgrier/quotd/internal/quote"
)

// ErrNoQuote means the full-list fallback could not be obtained. This is
// the only hard failure of random selection.
var ErrNoQuote = errors.New("no quote available")

const (
	// ringCap bounds the recent-picks ring.
	ringCap = 10
	// maxDraws bounds fallback draws before accepting a collision.
	// Freshness is best-effort, not guaranteed.
	maxDraws = 30
)

// FetchRandomFunc fetches one random quote from the network. Each call uses
// a freshly randomized cache-busting token.
type FetchRandomFunc func(ctx context.Context) (quote.Quote, error)

// FullListFunc returns the day's full quote list, fetching and caching it
// if absent.
type FullListFunc func(ctx context.Context) ([]quote.Quote, error)

// Picker selects random quotes while avoiding recent repeats. Session-only
// state; the ring is guarded so overlapping command goroutines stay safe.
type Picker struct {
	mu     sync.Mutex
	recent []string
}

// New creates an empty Picker.
func New() *Picker {
	return &Picker{}
}

// Pick returns a random quote, preferring one that is neither the current
// quote nor in the recent ring.
func (p *Picker) Pick(ctx context.Context, current quote.Quote, fetchRandom FetchRandomFunc, fullList FullListFunc) (quote.Quote, error) {
	// First try: one network fetch.
	q, err := fetchRandom(ctx)
	if err == nil && p.fresh(q, current) {
		p.push(q.Text)
		return q, nil
	}
	if errors.Is(err, fetch.ErrRateLimited) {
		return quote.Quote{}, err
	}

	// Repeat (or failure): exactly one more fetch with a new token.
	if err == nil {
		logging.Debug("random quote was a repeat, refetching", "text", q.Text)
		q, err = fetchRandom(ctx)
		if err == nil && p.fresh(q, current) {
			p.push(q.Text)
			return q, nil
		}
		if errors.Is(err, fetch.ErrRateLimited) {
			return quote.Quote{}, err
		}
	}

	// Still repeating or unreachable: draw from the day's full list.
	quotes, err := fullList(ctx)
	if err != nil || len(quotes) == 0 {
		if errors.Is(err, fetch.ErrRateLimited) {
			return quote.Quote{}, err
		}
		if err != nil {
			logging.Warn("full list fallback failed", "error", err)
		}
		return quote.Quote{}, ErrNoQuote
	}

	drawn := quotes[rand.Intn(len(quotes))]
	for i := 1; i < maxDraws && !p.fresh(drawn, current); i++ {
		drawn = quotes[rand.Intn(len(quotes))]
	}
	// A colliding final draw is accepted rather than failing the request.
	p.push(drawn.Text)
	return drawn, nil
}

// fresh reports whether q is neither the current quote nor recently shown.
func (p *Picker) fresh(q, current quote.Quote) bool {
	if q.Equal(current) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, text := range p.recent {
		if text == q.Text {
			return false
		}
	}
	return true
}

// push records a shown text, evicting the oldest past the cap. Insertion is
// idempotent if the text is already present.
func (p *Picker) push(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.recent {
		if t == text {
			return
		}
	}
	p.recent = append(p.recent, text)
	if len(p.recent) > ringCap {
		p.recent = p.recent[1:]
	}
}

// Recent returns a copy of the recently shown texts, oldest first.
func (p *Picker) Recent() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.recent))
	copy(out, p.recent)
	return out
}
