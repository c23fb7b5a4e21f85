// Package prefs persists user preferences and light bookkeeping: the
// light/dark theme choice, the favorites list, and the set of distinct days
// the app has been opened. All of it lives in the key-value store; the
// fetch core never touches this package.
package prefs

import (
	"encoding/json"

	"github.com/jgrier/quotd/internal/logging"
	"github.com/jgrier/quotd/internal/quote"
	"github.com/jgrier/quotd/internal/store"
)

const (
	themeKey     = "pref:theme"
	favoritesKey = "favorites"
	visitedKey   = "visited_days"
)

// maxFavorites caps the favorites list; the oldest entries fall off.
const maxFavorites = 200

// Prefs reads and writes persisted preferences.
type Prefs struct {
	store *store.Store
}

// New creates a Prefs over the given store.
func New(s *store.Store) *Prefs {
	return &Prefs{store: s}
}

// Theme returns the stored theme name, defaulting to dark.
func (p *Prefs) Theme() string {
	if theme, ok := p.store.Get(themeKey); ok && theme == "light" {
		return "light"
	}
	return "dark"
}

// SetTheme stores the theme name.
func (p *Prefs) SetTheme(theme string) {
	if err := p.store.Set(themeKey, theme); err != nil {
		logging.Error("failed to persist theme", "error", err)
	}
}

// ToggleTheme flips light/dark and returns the new theme name.
func (p *Prefs) ToggleTheme() string {
	next := "dark"
	if p.Theme() == "dark" {
		next = "light"
	}
	p.SetTheme(next)
	return next
}

// Favorites returns the stored favorites, newest first.
func (p *Prefs) Favorites() []quote.Quote {
	raw, ok := p.store.Get(favoritesKey)
	if !ok {
		return nil
	}
	var favorites []quote.Quote
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		logging.Warn("corrupt favorites entry", "error", err)
		return nil
	}
	return favorites
}

// IsFavorite reports whether q is in the favorites list.
func (p *Prefs) IsFavorite(q quote.Quote) bool {
	for _, f := range p.Favorites() {
		if f.Equal(q) {
			return true
		}
	}
	return false
}

// ToggleFavorite adds q to the favorites (newest first) or removes it if
// already present. Returns true when q is now a favorite.
func (p *Prefs) ToggleFavorite(q quote.Quote) bool {
	favorites := p.Favorites()

	for i, f := range favorites {
		if f.Equal(q) {
			p.saveFavorites(append(favorites[:i], favorites[i+1:]...))
			return false
		}
	}

	favorites = append([]quote.Quote{q}, favorites...)
	if len(favorites) > maxFavorites {
		favorites = favorites[:maxFavorites]
	}
	p.saveFavorites(favorites)
	return true
}

func (p *Prefs) saveFavorites(favorites []quote.Quote) {
	raw, err := json.Marshal(favorites)
	if err != nil {
		return
	}
	if err := p.store.Set(favoritesKey, string(raw)); err != nil {
		logging.Error("failed to persist favorites", "error", err)
	}
}

// RecordVisit marks dayKey as visited and returns the distinct-day count.
// Recording the same day twice is a no-op.
func (p *Prefs) RecordVisit(dayKey string) int {
	days := p.visitedDays()
	for _, d := range days {
		if d == dayKey {
			return len(days)
		}
	}

	days = append(days, dayKey)
	raw, err := json.Marshal(days)
	if err != nil {
		return len(days)
	}
	if err := p.store.Set(visitedKey, string(raw)); err != nil {
		logging.Error("failed to persist visited days", "error", err)
	}
	return len(days)
}

// VisitCount returns how many distinct days the app has been opened.
func (p *Prefs) VisitCount() int {
	return len(p.visitedDays())
}

func (p *Prefs) visitedDays() []string {
	raw, ok := p.store.Get(visitedKey)
	if !ok {
		return nil
	}
	var days []string
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		logging.Warn("corrupt visited days entry", "error", err)
		return nil
	}
	return days
}
