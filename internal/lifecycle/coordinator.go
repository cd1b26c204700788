// Package lifecycle wires host document events (open, move, rename,
// delete, shutdown) to the recency cache, the session state machine and
// the persistence gate.
package lifecycle

import (
	"log"
	"sync"
	"time"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/persist"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/session"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/store"
)

const (
	// maxRestoreRetries bounds the re-restoration attempts when the
	// restoration echo lands at the origin (the document had not
	// finished laying out when the move was issued).
	maxRestoreRetries = 3

	// restoreRetryDelay spaces out those attempts.
	restoreRetryDelay = 100 * time.Millisecond
)

// Editor is the host's caret surface for the currently visible document.
// The host has no synchronous caret read; the current position arrives
// as the first move notification after an open.
type Editor interface {
	// ShowCursor moves the caret to pos and scrolls it into view. The
	// host delivers the resulting move notification asynchronously.
	ShowCursor(key string, pos cache.Position) error
}

// Coordinator owns the cache+session pair and serializes all event
// handling behind one mutex, since the host may deliver events from
// multiple goroutines.
type Coordinator struct {
	mu      sync.Mutex
	cache   *cache.Recency
	session session.State
	editor  Editor
	gate    *persist.Gate

	ready        bool
	restoreTries int
}

// New builds a coordinator over the persisted entries (oldest first, as
// loaded from st). Durable writes go through a gate with the given
// quiescence window.
func New(entries []cache.Entry, st store.Store, editor Editor, window time.Duration) *Coordinator {
	co := &Coordinator{
		cache:  cache.FromEntries(entries),
		editor: editor,
	}
	co.gate = persist.NewGate(st, co.Snapshot, window, entries)
	return co
}

// Snapshot returns the cache contents oldest-first. Safe to call from
// any goroutine; the persistence gate uses it as its write source.
func (co *Coordinator) Snapshot() []cache.Entry {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.cache.EntriesOldestFirst()
}

// Ready opens the readiness gate. Move notifications arriving before
// Ready correspond to startup noise and are dropped.
func (co *Coordinator) Ready() {
	co.mu.Lock()
	defer co.mu.Unlock()
	co.ready = true
}

// DocumentOpened makes key the active document. Restoration waits for
// the host's first move notification, which reports where the caret
// actually landed after the open.
func (co *Coordinator) DocumentOpened(key string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	co.session.Activate(key)
	co.restoreTries = 0
}

// CursorMoved records a move notification for key. The first move after
// an open is the initial caret report and decides between restoring the
// stored position and keeping a caret the host already placed; the move
// after a restore is the restoration echo and is consumed without
// recording. Moves for non-active documents or before readiness are
// dropped.
func (co *Coordinator) CursorMoved(key string, pos cache.Position) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if !co.ready {
		return
	}
	if !co.session.IsActive(key) {
		return
	}

	switch co.session.Phase() {
	case session.Opening:
		co.handleInitialReport(key, pos)
	case session.Restoring:
		co.consumeEcho(key, pos)
	default:
		if stored, ok := co.cache.Get(key); ok && stored == pos {
			return
		}
		co.cache.Set(key, pos)
		co.gate.RequestSave()
	}
}

// handleInitialReport applies the first post-open move. A caret already
// away from the origin is authoritative and recorded; an origin caret
// with a stored non-origin position triggers restoration. Callers hold
// co.mu.
func (co *Coordinator) handleInitialReport(key string, pos cache.Position) {
	if !pos.IsOrigin() {
		co.cache.Set(key, pos)
		co.gate.RequestSave()
		co.session.Settle()
		return
	}

	stored, ok := co.cache.Get(key)
	if !ok || stored.IsOrigin() {
		co.session.Settle()
		return
	}

	co.session.MarkRestoring()
	if err := co.editor.ShowCursor(key, stored); err != nil {
		log.Printf("failed to restore caret for %s: %v", key, err)
		co.session.Settle()
	}
}

// consumeEcho absorbs the move caused by our own restore. An origin
// echo right after a non-origin restore means the move raced document
// layout; the restore is re-issued a bounded number of times before
// giving up. Callers hold co.mu.
func (co *Coordinator) consumeEcho(key string, pos cache.Position) {
	if co.session.Phase() == session.Restoring && pos.IsOrigin() {
		stored, ok := co.cache.Get(key)
		if ok && !stored.IsOrigin() && co.restoreTries < maxRestoreRetries {
			co.restoreTries++
			time.AfterFunc(restoreRetryDelay, func() {
				co.retryRestore(key)
			})
			return
		}
	}
	co.session.Settle()
}

func (co *Coordinator) retryRestore(key string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if !co.session.IsActive(key) || co.session.Settled() {
		return
	}
	stored, ok := co.cache.Get(key)
	if !ok {
		co.session.Settle()
		return
	}
	if err := co.editor.ShowCursor(key, stored); err != nil {
		log.Printf("failed to restore caret for %s: %v", key, err)
		co.session.Settle()
	}
}

// DocumentRenamed migrates the cached position from oldKey to newKey and
// retargets the active session if it names oldKey.
func (co *Coordinator) DocumentRenamed(oldKey, newKey string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.cache.Has(oldKey) {
		pos, _ := co.cache.Get(oldKey)
		co.cache.Delete(oldKey)
		co.cache.Set(newKey, pos)
		co.gate.RequestSave()
	}
	if co.session.IsActive(oldKey) {
		co.session.Rename(newKey)
	}
}

// DocumentDeleted removes the cached position for key. The save request
// is unconditional; the gate's unchanged-snapshot check absorbs the case
// where nothing was cached.
func (co *Coordinator) DocumentDeleted(key string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	co.cache.Delete(key)
	co.gate.RequestSave()
}

// DocumentClosed discards the active session if it names key. The cached
// position is kept for the next open.
func (co *Coordinator) DocumentClosed(key string) {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.session.IsActive(key) {
		co.session.Deactivate()
	}
}

// Shutdown flushes any pending state synchronously, absorbing a still
// pending debounced write. The flush takes the coordinator lock through
// its snapshot source, so Shutdown must not be called while holding it.
func (co *Coordinator) Shutdown() error {
	return co.gate.FlushNow()
}
