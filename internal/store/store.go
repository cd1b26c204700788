// Package store persists the recency cache as an ordered sequence of
// cursor records. Implementations write the whole sequence on each save
// and load it back oldest-first.
package store

import (
	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
)

// Store is the durable home of the cached positions.
type Store interface {
	// Load returns all persisted entries ordered least- to
	// most-recently-used. A missing or empty backing store yields an
	// empty slice, not an error.
	Load() ([]cache.Entry, error)

	// Save replaces the persisted state with entries, which are ordered
	// least- to most-recently-used.
	Save(entries []cache.Entry) error
}
