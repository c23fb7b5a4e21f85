package prefs

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jgrier/quotd/internal/quote"
	"github.com/jgrier/quotd/internal/store"
)

func newTestPrefs(t *testing.T) *Prefs {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s)
}

func TestThemeDefaultsToDark(t *testing.T) {
	p := newTestPrefs(t)
	if p.Theme() != "dark" {
		t.Errorf("expected dark default, got %s", p.Theme())
	}
}

func TestToggleTheme(t *testing.T) {
	p := newTestPrefs(t)

	if got := p.ToggleTheme(); got != "light" {
		t.Errorf("expected light after first toggle, got %s", got)
	}
	if p.Theme() != "light" {
		t.Error("toggle should persist")
	}
	if got := p.ToggleTheme(); got != "dark" {
		t.Errorf("expected dark after second toggle, got %s", got)
	}
}

func TestToggleFavorite(t *testing.T) {
	p := newTestPrefs(t)
	q := quote.Quote{Text: "Be water.", Author: "Bruce Lee"}

	if !p.ToggleFavorite(q) {
		t.Fatal("first toggle should favorite")
	}
	if !p.IsFavorite(q) {
		t.Error("quote should be a favorite")
	}
	if p.ToggleFavorite(q) {
		t.Fatal("second toggle should unfavorite")
	}
	if p.IsFavorite(q) {
		t.Error("quote should no longer be a favorite")
	}
}

func TestFavoritesNewestFirst(t *testing.T) {
	p := newTestPrefs(t)
	first := quote.Quote{Text: "First", Author: "A"}
	second := quote.Quote{Text: "Second", Author: "B"}

	p.ToggleFavorite(first)
	p.ToggleFavorite(second)

	favorites := p.Favorites()
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	if !favorites[0].Equal(second) {
		t.Errorf("newest favorite should be first, got %+v", favorites[0])
	}
}

func TestFavoritesCap(t *testing.T) {
	p := newTestPrefs(t)
	for i := 0; i < maxFavorites+10; i++ {
		p.ToggleFavorite(quote.Quote{Text: fmt.Sprintf("q%d", i), Author: "a"})
	}

	favorites := p.Favorites()
	if len(favorites) != maxFavorites {
		t.Fatalf("expected cap of %d, got %d", maxFavorites, len(favorites))
	}
	if favorites[0].Text != fmt.Sprintf("q%d", maxFavorites+9) {
		t.Errorf("newest favorite should survive the cap, got %s", favorites[0].Text)
	}
}

func TestRecordVisitDistinctDays(t *testing.T) {
	p := newTestPrefs(t)

	if got := p.RecordVisit("2025-06-01"); got != 1 {
		t.Errorf("expected 1 visit day, got %d", got)
	}
	if got := p.RecordVisit("2025-06-01"); got != 1 {
		t.Errorf("same day should not double-count, got %d", got)
	}
	if got := p.RecordVisit("2025-06-02"); got != 2 {
		t.Errorf("expected 2 visit days, got %d", got)
	}
	if p.VisitCount() != 2 {
		t.Errorf("VisitCount mismatch: %d", p.VisitCount())
	}
}
