// Package coord is the core entry point for quote loads.
//
// A load passes the throttle gate, checks the daily cache fast path, then
// resolves candidates and fetches over the network, delivering the terminal
// outcome to the UI as a Bubble Tea message. Candidate-level failures never
// cross this boundary; only success, rate limiting, or exhaustion do.
//
// Every load is stamped with a monotonically increasing generation. The UI
// applies a completion only if its generation is still current, so a late
// response from a timed-out request can never clobber newer state.
package coord

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jgrier/quotd/internal/cache"
	"github.com/jgrier/quotd/internal/endpoint"
	"github.com/jgrier/quotd/internal/fetch"
	"github.com/jgrier/quotd/internal/logging"
	"github.com/jgrier/quotd/internal/pick"
	"github.com/jgrier/quotd/internal/quote"
	"github.com/jgrier/quotd/internal/throttle"
	"github.com/jgrier/quotd/internal/ui"
)

// fetcher interface for dependency injection (testing).
type fetcher interface {
	FirstSuccess(ctx context.Context, candidates []endpoint.Candidate, timeout time.Duration) ([]quote.Quote, error)
}

// Coordinator wires the resolver, fetcher, throttle guard, selection policy
// and daily cache behind the two user-facing load operations.
type Coordinator struct {
	netCtx  endpoint.Context
	fetcher fetcher
	guard   *throttle.Guard
	picker  *pick.Picker
	daily   *cache.Daily
	timeout time.Duration
	now     func() time.Time
	gen     atomic.Uint64
}

// New creates a Coordinator with the real fetcher.
func New(netCtx endpoint.Context, timeout time.Duration, guard *throttle.Guard, daily *cache.Daily) *Coordinator {
	return NewWithFetcher(netCtx, timeout, guard, daily, fetch.New())
}

// NewWithFetcher allows injecting a custom fetcher (for testing).
func NewWithFetcher(netCtx endpoint.Context, timeout time.Duration, guard *throttle.Guard, daily *cache.Daily, f fetcher) *Coordinator {
	return &Coordinator{
		netCtx:  netCtx,
		fetcher: f,
		guard:   guard,
		picker:  pick.New(),
		daily:   daily,
		timeout: timeout,
		now:     time.Now,
	}
}

// IsCurrent reports whether gen is still the newest load generation.
func (c *Coordinator) IsCurrent(gen uint64) bool {
	return c.gen.Load() == gen
}

// LoadToday returns a command loading the quote of the day, or nil when the
// throttle guard drops the call. The cached quote is served without a
// network attempt.
func (c *Coordinator) LoadToday(ctx context.Context) tea.Cmd {
	if !c.guard.Allow(endpoint.Today) {
		logging.Debug("today load debounced")
		return nil
	}

	dayKey := cache.DayKey(c.now())
	gen := c.gen.Add(1)

	if q, ok := c.daily.Today(dayKey); ok {
		return func() tea.Msg {
			return ui.QuoteLoaded{Kind: endpoint.Today, Quote: q, FromCache: true, Gen: gen}
		}
	}

	return func() tea.Msg {
		candidates := endpoint.Resolve(endpoint.Today, c.netCtx)
		quotes, err := c.fetcher.FirstSuccess(ctx, candidates, c.timeout)
		if err != nil {
			return c.failure(endpoint.Today, gen, err)
		}
		q := quotes[0]
		// Only a successful fetch overwrites the cached entry.
		c.daily.SetToday(dayKey, q)
		return ui.QuoteLoaded{Kind: endpoint.Today, Quote: q, Gen: gen}
	}
}

// LoadRandom returns a command loading a new random quote distinct from
// current, or nil when the throttle guard drops the call.
func (c *Coordinator) LoadRandom(ctx context.Context, current quote.Quote) tea.Cmd {
	if !c.guard.Allow(endpoint.Random) {
		logging.Debug("random load debounced")
		return nil
	}

	dayKey := cache.DayKey(c.now())
	gen := c.gen.Add(1)

	return func() tea.Msg {
		q, err := c.picker.Pick(ctx, current, c.fetchRandom, func(ctx context.Context) ([]quote.Quote, error) {
			return c.fullList(ctx, dayKey)
		})
		if err != nil {
			return c.failure(endpoint.Random, gen, err)
		}
		return ui.QuoteLoaded{Kind: endpoint.Random, Quote: q, Gen: gen}
	}
}

// fetchRandom fetches one random quote. Resolving per call gives every
// attempt a fresh cache-busting token.
func (c *Coordinator) fetchRandom(ctx context.Context) (quote.Quote, error) {
	candidates := endpoint.Resolve(endpoint.Random, c.netCtx)
	quotes, err := c.fetcher.FirstSuccess(ctx, candidates, c.timeout)
	if err != nil {
		return quote.Quote{}, err
	}
	return quotes[0], nil
}

// fullList returns the day's full quote list, fetching and caching it if
// absent. Runs inside an already-admitted random load, so it does not pass
// the throttle gate again.
func (c *Coordinator) fullList(ctx context.Context, dayKey string) ([]quote.Quote, error) {
	if quotes, ok := c.daily.FullList(dayKey); ok {
		return quotes, nil
	}

	candidates := endpoint.Resolve(endpoint.FullList, c.netCtx)
	quotes, err := c.fetcher.FirstSuccess(ctx, candidates, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("full list fetch failed: %w", err)
	}
	c.daily.SetFullList(dayKey, quotes)
	return quotes, nil
}

// failure maps a terminal error to its UI message, recording the backoff
// deadline on rate limiting.
func (c *Coordinator) failure(kind endpoint.Kind, gen uint64, err error) tea.Msg {
	if errors.Is(err, fetch.ErrRateLimited) {
		c.guard.RecordRateLimited(throttle.DefaultBackoff)
		logging.Warn("rate limited, backing off", "kind", kind, "backoff", throttle.DefaultBackoff)
		return ui.RateLimited{Kind: kind, Backoff: throttle.DefaultBackoff, Gen: gen}
	}
	logging.Error("load failed", "kind", kind, "error", err)
	return ui.LoadFailed{Kind: kind, Err: err, Gen: gen}
}
