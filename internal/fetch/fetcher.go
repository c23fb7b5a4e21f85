// Package fetch retrieves quote payloads through the candidate relay chain.
//
// Candidates are tried strictly in order with one bounded request each. The
// first successfully parsed response wins; redundancy comes from moving down
// the chain, never from retrying a candidate within the same call.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jgrier/quotd/internal/endpoint"
	"github.com/jgrier/quotd/internal/logging"
	"github.com/jgrier/quotd/internal/quote"
)

var (
	// ErrNoCandidates means the resolver produced an empty chain — a
	// configuration problem, not a network one.
	ErrNoCandidates = errors.New("no candidate endpoints")

	// ErrRateLimited means the upstream answered 429. It short-circuits
	// the rest of the chain: hammering other relays for the same
	// rate-limited upstream buys nothing.
	ErrRateLimited = errors.New("upstream rate limited")

	// ErrExhausted means every candidate failed without a rate-limit
	// signal. The wrapped chain carries the last underlying failure.
	ErrExhausted = errors.New("all candidates failed")
)

// maxBodySize bounds response reads; quote payloads are small.
const maxBodySize = 4 << 20

// Fetcher issues HTTP requests against candidate endpoints.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher. The per-candidate request bound is supplied per
// call, so the client itself carries no timeout.
func New() *Fetcher {
	return &Fetcher{client: &http.Client{}}
}

// FirstSuccess tries each candidate in order, bounding every request by
// timeout, and returns the first successfully parsed payload.
//
// A 429 from any candidate returns ErrRateLimited immediately. If the chain
// is exhausted the error wraps both ErrExhausted and the last failure.
func (f *Fetcher) FirstSuccess(ctx context.Context, candidates []endpoint.Candidate, timeout time.Duration) ([]quote.Quote, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	var lastErr error
	for i, c := range candidates {
		quotes, err := f.fetchOne(ctx, c, timeout)
		if err == nil {
			return quotes, nil
		}
		if errors.Is(err, ErrRateLimited) {
			logging.Warn("candidate rate limited, aborting chain", "candidate", i)
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logging.Debug("candidate failed", "candidate", i, "url", c.URL, "error", err)
		lastErr = err
	}

	return nil, fmt.Errorf("%w: last error: %w", ErrExhausted, lastErr)
}

// fetchOne performs a single bounded request against one candidate and
// parses the body per its declared shape.
func (f *Fetcher) fetchOne(ctx context.Context, c endpoint.Candidate, timeout time.Duration) ([]quote.Quote, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "quotd/1.0 (https://github.com/jgrier/quotd)")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch c.Shape {
	case endpoint.WrappedJSON:
		return quote.ParseWrapped(body)
	default:
		return quote.ParseDirect(body)
	}
}
