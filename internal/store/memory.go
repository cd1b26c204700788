package store

import (
	"sync"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
)

// Memory is an in-memory Store. Suitable for tests and ephemeral
// sessions; data is lost on restart.
type Memory struct {
	mu      sync.Mutex
	entries []cache.Entry
	saves   int
	failure error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the last saved entries.
func (m *Memory) Load() ([]cache.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]cache.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Save stores a copy of entries.
func (m *Memory) Save(entries []cache.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return m.failure
	}
	m.entries = make([]cache.Entry, len(entries))
	copy(m.entries, entries)
	m.saves++
	return nil
}

// Saves returns how many writes have completed.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// FailWith makes subsequent saves return err (nil restores normal
// operation).
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}
