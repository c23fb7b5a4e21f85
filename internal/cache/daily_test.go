package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jgrier/quotd/internal/quote"
	"github.com/jgrier/quotd/internal/store"
)

func newTestCache(t *testing.T) *Daily {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New(s)
}

func TestDayKey(t *testing.T) {
	ts := time.Date(2025, 6, 1, 23, 45, 0, 0, time.Local)
	if got := DayKey(ts); got != "2025-06-01" {
		t.Errorf("expected 2025-06-01, got %s", got)
	}
}

func TestTodayRoundTrip(t *testing.T) {
	d := newTestCache(t)

	if _, ok := d.Today("2025-06-01"); ok {
		t.Fatal("expected empty cache")
	}

	q := quote.Quote{Text: "Be water.", Author: "Bruce Lee"}
	d.SetToday("2025-06-01", q)

	got, ok := d.Today("2025-06-01")
	if !ok {
		t.Fatal("expected cached quote")
	}
	if !got.Equal(q) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestTodayKeysAreIndependent(t *testing.T) {
	d := newTestCache(t)
	d.SetToday("2025-06-01", quote.Quote{Text: "A", Author: "B"})

	if _, ok := d.Today("2025-06-02"); ok {
		t.Error("a new day key must not see the old day's entry")
	}
}

func TestFullListRoundTrip(t *testing.T) {
	d := newTestCache(t)

	quotes := []quote.Quote{
		{Text: "One", Author: "A"},
		{Text: "Two", Author: "B"},
	}
	d.SetFullList("2025-06-01", quotes)

	got, ok := d.FullList("2025-06-01")
	if !ok {
		t.Fatal("expected cached list")
	}
	if len(got) != 2 || !got[0].Equal(quotes[0]) || !got[1].Equal(quotes[1]) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFullListEmptyTreatedAsAbsent(t *testing.T) {
	d := newTestCache(t)
	d.SetFullList("2025-06-01", []quote.Quote{})

	if _, ok := d.FullList("2025-06-01"); ok {
		t.Error("an empty cached list should read back as absent")
	}
}
