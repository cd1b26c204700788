package cache_test

import (
	"fmt"
	"testing"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
)

func TestSetAndGet(t *testing.T) {
	c := cache.New()

	pos := cache.Position{Line: 5, Ch: 10}
	c.Set("a.md", pos)

	got, ok := c.Get("a.md")
	if !ok {
		t.Fatal("expected entry for a.md")
	}
	if got != pos {
		t.Errorf("expected %v, got %v", pos, got)
	}

	// Overwrite updates the stored position.
	updated := cache.Position{Line: 7, Ch: 2}
	c.Set("a.md", updated)
	got, _ = c.Get("a.md")
	if got != updated {
		t.Errorf("expected %v after overwrite, got %v", updated, got)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry after overwrite, got %d", c.Len())
	}
}

func TestGetMissing(t *testing.T) {
	c := cache.New()
	if _, ok := c.Get("missing.md"); ok {
		t.Error("expected no entry for missing key")
	}
}

func TestCapacityInvariant(t *testing.T) {
	c := cache.New()

	// Insert one more distinct key than the capacity allows.
	for i := 0; i < cache.Capacity+1; i++ {
		c.Set(fmt.Sprintf("doc-%d.md", i), cache.Position{Line: uint32(i)})
	}

	if c.Len() != cache.Capacity {
		t.Fatalf("expected %d entries, got %d", cache.Capacity, c.Len())
	}

	// The first-inserted key is gone; the rest survive and are retrievable.
	if c.Has("doc-0.md") {
		t.Error("expected oldest entry doc-0.md to be evicted")
	}
	for i := 1; i < cache.Capacity+1; i++ {
		key := fmt.Sprintf("doc-%d.md", i)
		got, ok := c.Get(key)
		if !ok {
			t.Fatalf("expected entry for %s", key)
		}
		if got.Line != uint32(i) {
			t.Errorf("expected line %d for %s, got %d", i, key, got.Line)
		}
	}
}

func TestRecencyPromotion(t *testing.T) {
	c := cache.New()

	// Fill to capacity, with A then B then C as the three oldest.
	c.Set("a.md", cache.Position{Line: 1})
	c.Set("b.md", cache.Position{Line: 2})
	c.Set("c.md", cache.Position{Line: 3})
	for i := 3; i < cache.Capacity; i++ {
		c.Set(fmt.Sprintf("fill-%d.md", i), cache.Position{})
	}

	// Touching A makes B the least-recently-used entry.
	if _, ok := c.Get("a.md"); !ok {
		t.Fatal("expected entry for a.md")
	}

	c.Set("overflow.md", cache.Position{})

	if !c.Has("a.md") {
		t.Error("a.md was promoted and must survive eviction")
	}
	if c.Has("b.md") {
		t.Error("b.md was least-recently-used and must be evicted")
	}
	if !c.Has("c.md") {
		t.Error("c.md must survive eviction")
	}
}

func TestHasDoesNotPromote(t *testing.T) {
	c := cache.New()

	c.Set("a.md", cache.Position{Line: 1})
	c.Set("b.md", cache.Position{Line: 2})
	for i := 2; i < cache.Capacity; i++ {
		c.Set(fmt.Sprintf("fill-%d.md", i), cache.Position{})
	}

	// Has must not bump a.md, so it is still the eviction candidate.
	if !c.Has("a.md") {
		t.Fatal("expected entry for a.md")
	}
	c.Set("overflow.md", cache.Position{})

	if c.Has("a.md") {
		t.Error("a.md must be evicted; Has must not affect recency")
	}
}

func TestDelete(t *testing.T) {
	c := cache.New()

	c.Set("a.md", cache.Position{Line: 1})
	c.Delete("a.md")

	if c.Has("a.md") {
		t.Error("expected a.md to be removed")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}

	// Deleting an absent key is a no-op.
	c.Delete("missing.md")
}

func TestEntriesOldestFirst(t *testing.T) {
	c := cache.New()

	c.Set("a.md", cache.Position{Line: 1})
	c.Set("b.md", cache.Position{Line: 2})
	c.Set("c.md", cache.Position{Line: 3})
	c.Get("a.md") // promote

	want := []string{"b.md", "c.md", "a.md"}
	entries := c.EntriesOldestFirst()
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.File != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], e.File)
		}
	}

	// The snapshot is restartable and must not mutate recency.
	again := c.EntriesOldestFirst()
	for i, e := range again {
		if e.File != want[i] {
			t.Errorf("second snapshot entry %d: expected %s, got %s", i, want[i], e.File)
		}
	}
}

func TestFromEntriesPreservesOrder(t *testing.T) {
	entries := []cache.Entry{
		{File: "old.md", Cursor: cache.Position{Line: 1}},
		{File: "mid.md", Cursor: cache.Position{Line: 2}},
		{File: "new.md", Cursor: cache.Position{Line: 3}},
	}

	c := cache.FromEntries(entries)

	got := c.EntriesOldestFirst()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	for i, e := range got {
		if e != entries[i] {
			t.Errorf("entry %d: expected %v, got %v", i, entries[i], e)
		}
	}

	// "old.md" resumes as the eviction candidate.
	for i := 0; i < cache.Capacity-2; i++ {
		c.Set(fmt.Sprintf("fill-%d.md", i), cache.Position{})
	}
	if c.Has("old.md") {
		t.Error("expected old.md to be evicted first after restore")
	}
}
