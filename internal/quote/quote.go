// Package quote defines the quote value type and the parsers for the
// provider response shapes.
//
// Every reachable endpoint ultimately yields the same payload: a JSON array
// of objects with "text" and "author" fields. Passthrough relays return that
// array directly; the wrapped relay variant returns an envelope object whose
// "contents" field holds the array as an embedded JSON string.
package quote

import (
	"encoding/json"
	"fmt"
)

// Quote is an immutable quote value. Both fields are always non-empty;
// Parse rejects payloads that would produce a partial quote.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Equal reports structural equality (text + author).
func (q Quote) Equal(other Quote) bool {
	return q.Text == other.Text && q.Author == other.Author
}

// wrapped is the envelope returned by the wrapped relay variant.
type wrapped struct {
	Contents string `json:"contents"`
}

// ParseDirect parses a provider response body that is the quote array itself.
func ParseDirect(body []byte) ([]Quote, error) {
	var quotes []Quote
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("failed to parse quote payload: %w", err)
	}
	return validate(quotes)
}

// ParseWrapped parses an envelope object and then parses its embedded
// contents string as the real payload.
func ParseWrapped(body []byte) ([]Quote, error) {
	var env wrapped
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse envelope: %w", err)
	}
	if env.Contents == "" {
		return nil, fmt.Errorf("envelope has no contents")
	}
	return ParseDirect([]byte(env.Contents))
}

// validate enforces the payload contract: a non-empty array whose first
// element has non-empty text and author.
func validate(quotes []Quote) ([]Quote, error) {
	if len(quotes) == 0 {
		return nil, fmt.Errorf("empty quote payload")
	}
	if quotes[0].Text == "" || quotes[0].Author == "" {
		return nil, fmt.Errorf("quote payload missing text or author")
	}
	return quotes, nil
}
