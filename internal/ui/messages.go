// Package ui provides the Bubble Tea TUI for quotd.
package ui

import (
	"time"

	"github.com/jgrier/quotd/internal/endpoint"
	"github.com/jgrier/quotd/internal/quote"
)

// QuoteLoaded is sent when a load operation produced a quote.
type QuoteLoaded struct {
	Kind      endpoint.Kind
	Quote     quote.Quote
	FromCache bool
	Gen       uint64 // request generation for stale-result discard
}

// LoadFailed is sent when a load operation failed terminally.
type LoadFailed struct {
	Kind endpoint.Kind
	Err  error
	Gen  uint64
}

// RateLimited is sent when the upstream signaled 429. The backoff deadline
// is already recorded by the time this arrives.
type RateLimited struct {
	Kind    endpoint.Kind
	Backoff time.Duration
	Gen     uint64
}
