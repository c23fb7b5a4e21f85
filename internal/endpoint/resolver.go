// Package endpoint maps logical quote operations to ordered candidate URLs.
//
// The upstream provider does not send CORS-friendly responses in every
// deployment, so reaching it goes through a chain of relays. Resolve builds
// that chain in strict preference order; the fetcher tries it front to back.
package endpoint

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"time"
)

// Kind identifies a logical quote operation.
type Kind int

const (
	// Today fetches the quote of the day.
	Today Kind = iota
	// Random fetches one random quote.
	Random
	// FullList fetches the provider's full quote list.
	FullList
)

// String returns the kind name for logging and cache keys.
func (k Kind) String() string {
	switch k {
	case Today:
		return "today"
	case Random:
		return "random"
	case FullList:
		return "list"
	default:
		return "unknown"
	}
}

// path returns the upstream API path for the kind.
func (k Kind) path() string {
	switch k {
	case Today:
		return "api/today"
	case Random:
		return "api/random"
	default:
		return "api/quotes"
	}
}

// Shape declares how a candidate's response body is parsed.
type Shape int

const (
	// DirectJSON bodies are the quote array itself.
	DirectJSON Shape = iota
	// WrappedJSON bodies are an envelope whose contents field embeds the
	// quote array as a JSON string.
	WrappedJSON
)

// Candidate is one reachable location for an operation plus the parsing
// strategy for its response. Candidate lists are ordered by preference.
type Candidate struct {
	URL   string
	Shape Shape
}

// Context carries the configuration the resolver needs.
type Context struct {
	// DevRelay routes everything through the local relay, sidestepping
	// cross-origin restrictions during development.
	DevRelay bool
	// LocalRelayURL is the local relay base, e.g. http://127.0.0.1:8901.
	LocalRelayURL string
	// RelayBaseURL is the user's own deployed relay, if any.
	RelayBaseURL string
	// UpstreamBaseURL is the quotes provider origin.
	UpstreamBaseURL string
}

// Public relay bases tried after the user's own relay.
const (
	alloriginsRawBase = "https://api.allorigins.win/raw?url="
	alloriginsGetBase = "https://api.allorigins.win/get?url="
	corsproxyBase     = "https://corsproxy.io/?url="
)

// Resolve returns the ordered candidate list for the operation, or an empty
// list when the context has nowhere to point — callers must treat that as a
// configuration error, not a network failure. Resolve never mutates shared
// state; random requests draw a fresh cache-busting token each call, so
// consecutive resolutions differ in that token only.
func Resolve(kind Kind, ctx Context) []Candidate {
	suffix := kind.path()
	if kind == Random {
		// Uniqueness-breaking fragment so intermediary caches cannot
		// serve a repeated response.
		suffix += fmt.Sprintf("?t=%d&r=%06d", time.Now().UnixNano(), rand.Intn(1000000))
	}

	if ctx.DevRelay {
		if ctx.LocalRelayURL == "" {
			return nil
		}
		return []Candidate{{URL: joinURL(ctx.LocalRelayURL, suffix), Shape: DirectJSON}}
	}

	var candidates []Candidate
	if ctx.RelayBaseURL != "" {
		candidates = append(candidates, Candidate{
			URL:   joinURL(ctx.RelayBaseURL, suffix),
			Shape: DirectJSON,
		})
	}

	if ctx.UpstreamBaseURL != "" {
		upstream := url.QueryEscape(joinURL(ctx.UpstreamBaseURL, suffix))
		candidates = append(candidates,
			Candidate{URL: alloriginsRawBase + upstream, Shape: DirectJSON},
			Candidate{URL: alloriginsGetBase + upstream, Shape: WrappedJSON},
			Candidate{URL: corsproxyBase + upstream, Shape: DirectJSON},
		)
	}

	return candidates
}

// joinURL joins a base URL and a path suffix with exactly one slash.
func joinURL(base, suffix string) string {
	return strings.TrimRight(base, "/") + "/" + suffix
}
