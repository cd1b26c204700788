// Package cache provides a fixed-capacity recency cache mapping document
// keys to their last known cursor position.
package cache

import "container/list"

// Capacity is the maximum number of remembered positions. Inserting beyond
// it evicts the least-recently-used entry.
const Capacity = 50

// Position is a caret location within a document.
type Position struct {
	Line uint32 `json:"line"`
	Ch   uint32 `json:"ch"`
}

// IsOrigin reports whether the position is the document origin (0, 0).
func (p Position) IsOrigin() bool {
	return p.Line == 0 && p.Ch == 0
}

// Entry is the durable form of one cached position.
type Entry struct {
	File   string   `json:"file"`
	Cursor Position `json:"cursor"`
}

type recencyEntry struct {
	key string
	pos Position
}

// Recency is an LRU cache of cursor positions keyed by document path.
// Get and Set promote the entry to most-recently-used; overflowing
// Capacity drops the least-recently-used entry.
//
// Recency is not synchronized; it is owned and serialized by the
// lifecycle coordinator.
type Recency struct {
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

// New returns an empty cache.
func New() *Recency {
	return &Recency{
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// FromEntries builds a cache from persisted entries ordered least- to
// most-recently-used, so LRU semantics resume where the last session
// left off. Entries beyond Capacity are dropped oldest-first.
func FromEntries(entries []Entry) *Recency {
	c := New()
	for _, e := range entries {
		c.Set(e.File, e.Cursor)
	}
	return c
}

// Has reports whether key has an entry without affecting recency.
func (c *Recency) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Get returns the stored position for key and promotes it to
// most-recently-used.
func (c *Recency) Get(key string) (Position, bool) {
	elem, ok := c.entries[key]
	if !ok {
		return Position{}, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*recencyEntry).pos, true
}

// Set inserts or overwrites the position for key and promotes it to
// most-recently-used, evicting the least-recently-used entry if the
// cache would exceed Capacity.
func (c *Recency) Set(key string, pos Position) {
	if elem, ok := c.entries[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*recencyEntry).pos = pos
		return
	}

	c.entries[key] = c.order.PushFront(&recencyEntry{key: key, pos: pos})

	if c.order.Len() > Capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*recencyEntry).key)
		}
	}
}

// Delete removes the entry for key if present.
func (c *Recency) Delete(key string) {
	elem, ok := c.entries[key]
	if !ok {
		return
	}
	c.order.Remove(elem)
	delete(c.entries, key)
}

// Len returns the number of cached entries.
func (c *Recency) Len() int {
	return c.order.Len()
}

// EntriesOldestFirst returns the full contents ordered least- to
// most-recently-used without affecting recency. The returned slice is a
// copy; callers may keep it across further mutations.
func (c *Recency) EntriesOldestFirst() []Entry {
	entries := make([]Entry, 0, c.order.Len())
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		e := elem.Value.(*recencyEntry)
		entries = append(entries, Entry{File: e.key, Cursor: e.pos})
	}
	return entries
}
