// Package cache stores the day's quote and full quote list in the
// persistent key-value store, keyed by the local calendar date.
//
// Entries for past day keys are never purged: the key changes at midnight
// and old entries simply stop being looked up. That is a known
// unbounded-growth property, accepted because a day's entry is tiny.
package cache

import (
	"encoding/json"
	"time"

	"github.com/jgrier/quotd/internal/logging"
	"github.com/jgrier/quotd/internal/quote"
	"github.com/jgrier/quotd/internal/store"
)

const (
	todayKeyPrefix = "cache:today:"
	listKeyPrefix  = "cache:list:"
)

// DayKey formats t's local calendar date as the cache day key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Daily caches the day's quote and full list. Reads are synchronous and
// side-effect-free; writes overwrite unconditionally for the given key.
type Daily struct {
	store *store.Store
}

// New creates a Daily cache over the given store.
func New(s *store.Store) *Daily {
	return &Daily{store: s}
}

// Today returns the cached quote of the day for dayKey, if present.
func (d *Daily) Today(dayKey string) (quote.Quote, bool) {
	raw, ok := d.store.Get(todayKeyPrefix + dayKey)
	if !ok {
		return quote.Quote{}, false
	}
	var q quote.Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		logging.Warn("corrupt today cache entry", "day", dayKey, "error", err)
		return quote.Quote{}, false
	}
	return q, true
}

// SetToday caches the quote of the day for dayKey. Callers only write
// successfully fetched quotes, so a failed fetch never clobbers a good entry.
func (d *Daily) SetToday(dayKey string, q quote.Quote) {
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := d.store.Set(todayKeyPrefix+dayKey, string(raw)); err != nil {
		logging.Error("failed to cache today quote", "day", dayKey, "error", err)
	}
}

// FullList returns the cached full quote list for dayKey, if present.
func (d *Daily) FullList(dayKey string) ([]quote.Quote, bool) {
	raw, ok := d.store.Get(listKeyPrefix + dayKey)
	if !ok {
		return nil, false
	}
	var quotes []quote.Quote
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		logging.Warn("corrupt list cache entry", "day", dayKey, "error", err)
		return nil, false
	}
	if len(quotes) == 0 {
		return nil, false
	}
	return quotes, true
}

// SetFullList caches the full quote list for dayKey.
func (d *Daily) SetFullList(dayKey string, quotes []quote.Quote) {
	raw, err := json.Marshal(quotes)
	if err != nil {
		return
	}
	if err := d.store.Set(listKeyPrefix+dayKey, string(raw)); err != nil {
		logging.Error("failed to cache quote list", "day", dayKey, "error", err)
	}
}
