package store_test

import (
	"path/filepath"
	"testing"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/store"
)

func openTestDB(t *testing.T) *store.SQLite {
	t.Helper()
	db, err := store.NewSQLite(filepath.Join(t.TempDir(), "positions.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return db
}

func TestSQLiteLoadEmpty(t *testing.T) {
	db := openTestDB(t)

	entries, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty entries, got %v", entries)
	}
}

func TestSQLiteRoundTripPreservesOrder(t *testing.T) {
	db := openTestDB(t)

	entries := []cache.Entry{
		{File: "old.md", Cursor: cache.Position{Line: 1, Ch: 2}},
		{File: "mid.md", Cursor: cache.Position{Line: 3, Ch: 4}},
		{File: "new.md", Cursor: cache.Position{Line: 5, Ch: 6}},
	}
	if err := db.Save(entries); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("entry %d: expected %v, got %v", i, entries[i], got[i])
		}
	}
}

func TestSQLiteSaveReplacesPreviousState(t *testing.T) {
	db := openTestDB(t)

	if err := db.Save([]cache.Entry{
		{File: "a.md", Cursor: cache.Position{Line: 1}},
		{File: "b.md", Cursor: cache.Position{Line: 2}},
	}); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	replacement := []cache.Entry{{File: "c.md", Cursor: cache.Position{Line: 3}}}
	if err := db.Save(replacement); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := db.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 1 || got[0] != replacement[0] {
		t.Errorf("expected state replaced with %v, got %v", replacement, got)
	}
}
