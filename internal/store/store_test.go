package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)

	if v, ok := s.Get("nope"); ok {
		t.Errorf("expected missing key, got %q", v)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok := s.Get("theme")
	if !ok {
		t.Fatal("expected key to exist")
	}
	if v != "dark" {
		t.Errorf("expected 'dark', got %q", v)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, _ := s.Get("theme")
	if v != "light" {
		t.Errorf("expected 'light', got %q", v)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("expected key to be gone after delete")
	}

	// Deleting an absent key is fine
	if err := s.Delete("k"); err != nil {
		t.Errorf("deleting absent key: %v", err)
	}
}
