// Package persist debounces and coalesces durable writes of the recency
// cache, so bursts of cursor movement cost at most one disk write per
// quiescence window.
package persist

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/store"
)

// DefaultQuiescence is the window within which save requests coalesce
// into a single write. Shutdown always flushes synchronously, so a long
// window only bounds how much movement an abnormal exit can lose.
const DefaultQuiescence = 10 * time.Second

// Gate schedules durable writes with a leading-edge debounce: the first
// request in a burst arms a timer for the quiescence window, later
// requests before it fires are absorbed, and the write that eventually
// runs reflects the cache state at fire time. Writes whose serialization
// matches the last persisted snapshot are skipped.
type Gate struct {
	store  store.Store
	source func() []cache.Entry
	window time.Duration

	mu    sync.Mutex // guards timer
	timer *time.Timer

	writeMu sync.Mutex // serializes writes, guards last
	last    []cache.Entry
}

// NewGate creates a gate writing to st. source produces the current
// cache contents oldest-first and is called without gate locks held, so
// it may take the coordinator's lock. initial is the snapshot already
// persisted (the loaded state), used to skip the first redundant write.
func NewGate(st store.Store, source func() []cache.Entry, window time.Duration, initial []cache.Entry) *Gate {
	return &Gate{
		store:  st,
		source: source,
		window: window,
		last:   initial,
	}
}

// RequestSave schedules a durable write. If a write is already pending
// the request is absorbed into it; the pending write is never
// re-scheduled, so at least one write happens within one window of the
// first request in a burst.
func (g *Gate) RequestSave() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		return
	}
	g.timer = time.AfterFunc(g.window, g.fire)
}

// FlushNow cancels any pending debounced write and writes immediately,
// synchronously with respect to the caller. Used at shutdown.
func (g *Gate) FlushNow() error {
	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.mu.Unlock()

	return g.write()
}

// fire runs on the debounce timer. Requests arriving while the write is
// in progress start a new window.
func (g *Gate) fire() {
	g.mu.Lock()
	g.timer = nil
	g.mu.Unlock()

	if err := g.write(); err != nil {
		// The event path cannot observe a timer failure; the position
		// is simply not remembered until the next save request.
		log.Printf("debounced save failed: %v", err)
	}
}

func (g *Gate) write() error {
	entries := g.source()

	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if snapshotsEqual(entries, g.last) {
		return nil
	}
	if err := g.store.Save(entries); err != nil {
		return fmt.Errorf("failed to persist positions: %w", err)
	}
	g.last = entries
	return nil
}

// snapshotsEqual compares element-wise by key and position.
func snapshotsEqual(a, b []cache.Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
