// Package watcher turns on-disk removals of workspace documents into
// delete events, so positions cached for files removed behind the host's
// back do not linger until eviction.
package watcher

import (
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// DeleteSink receives the workspace-relative key of a removed document.
type DeleteSink interface {
	DocumentDeleted(key string)
}

// Watcher monitors the workspace tree for file removals.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      string
	sink      DeleteSink
	stop      chan struct{}
}

// New creates a watcher rooted at root. Removals and renames observed on
// disk are reported to sink as deletes keyed by workspace-relative path.
func New(root string, sink DeleteSink) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsw,
		root:      root,
		sink:      sink,
		stop:      make(chan struct{}),
	}

	// fsnotify doesn't watch subdirectories automatically.
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// addRecursive adds a directory and all its subdirectories to the watcher.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // skip unreadable subdirectories
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name == ".git" || name == "node_modules" || name == ".obsidian" {
			return filepath.SkipDir
		}
		if path != dir && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher error: %v", err)
		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create):
		// New directories need their own watch.
		if err := w.addRecursive(event.Name); err != nil {
			log.Printf("failed to watch %s: %v", event.Name, err)
		}
	case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
		// A rename observed on disk loses the old key; the host's own
		// rename events carry both names and arrive via the server.
		rel, err := filepath.Rel(w.root, event.Name)
		if err != nil {
			return
		}
		w.sink.DocumentDeleted(filepath.ToSlash(rel))
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.fsWatcher.Close()
}
