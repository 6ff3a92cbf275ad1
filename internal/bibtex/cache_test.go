package bibtex

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBib(t *testing.T, path, year string) {
	t.Helper()
	src := `@article{a, year = {` + year + `}}`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestCache_ParsesOncePerPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	writeBib(t, path, "2000")

	cache := NewCache()

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := first["a"].Field("year"); got != "2000" {
		t.Fatalf("Field(year) = %q, want 2000", got)
	}

	// Rewrite the file; a second load must return the stale index.
	writeBib(t, path, "2024")

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := second["a"].Field("year"); got != "2000" {
		t.Errorf("Field(year) = %q, want 2000 (cache must not re-read within a run)", got)
	}
}

func TestCache_PathSpellingsAreDistinct(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	writeBib(t, path, "2000")

	cache := NewCache()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// A different spelling of the same file is a cache miss and parses
	// fresh, picking up the rewrite the first spelling cannot see.
	// Built by concatenation: filepath.Join would clean the "." away.
	writeBib(t, path, "2024")
	other := dir + "/./refs.bib"

	idx, err := cache.Load(other)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := idx["a"].Field("year"); got != "2024" {
		t.Errorf("Field(year) = %q, want 2024 (no path canonicalization)", got)
	}
}

func TestCache_ClearForcesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	writeBib(t, path, "2000")

	cache := NewCache()
	if _, err := cache.Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	writeBib(t, path, "2024")
	cache.Clear()

	idx, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := idx["a"].Field("year"); got != "2024" {
		t.Errorf("Field(year) = %q, want 2024 after Clear()", got)
	}
}

func TestCache_MissingFile(t *testing.T) {
	cache := NewCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "absent.bib")); err == nil {
		t.Errorf("Load() expected error for missing file, got nil")
	}
}

func TestCache_ParseErrorNotCached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "refs.bib")
	if err := os.WriteFile(path, []byte(`@article{broken, title = {never closed`), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cache := NewCache()
	if _, err := cache.Load(path); err == nil {
		t.Fatalf("Load() expected parse error, got nil")
	}

	// Fixing the file and loading again succeeds: failures are not cached.
	writeBib(t, path, "2024")
	idx, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := idx["a"].Field("year"); got != "2024" {
		t.Errorf("Field(year) = %q, want 2024", got)
	}
}
