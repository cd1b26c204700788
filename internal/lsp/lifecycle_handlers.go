package lsp

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/config"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/lifecycle"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/persist"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/store"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/watcher"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	cfg, err := config.Load(s.defaults, params.InitializationOptions)
	if err != nil {
		return nil, err
	}
	s.cfg = cfg
	log.Printf("Config: %+v", cfg)

	if params.RootURI == nil {
		return nil, fmt.Errorf("a workspace root is required")
	}
	rootURI, err := url.Parse(*params.RootURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse root uri: %w", err)
	}
	s.rootURI = *params.RootURI
	s.rootPath = rootURI.Path

	st, err := s.openStore()
	if err != nil {
		return nil, err
	}

	entries, err := st.Load()
	if err != nil {
		// Unreadable state is treated as absent; the session starts with
		// an empty cache rather than failing the editor.
		log.Printf("failed to load persisted positions: %v", err)
		entries = nil
	}
	if len(entries) > cache.Capacity {
		entries = entries[len(entries)-cache.Capacity:]
	}

	s.coord = lifecycle.New(entries, st, s, persist.DefaultQuiescence)

	if w, err := watcher.New(s.rootPath, s.coord); err != nil {
		// Host delete events still cover in-editor removals.
		log.Printf("external-change watcher unavailable: %v", err)
	} else {
		s.watch = w
	}

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindNone
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

// openStore builds the configured persistence backend rooted in the
// workspace's state directory.
func (s *Server) openStore() (store.Store, error) {
	dir := s.cfg.StateDir
	if dir == "" {
		stateBase, err := getXDGStateHome(lsName)
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(stateBase, url.PathEscape(s.rootPath))
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	switch s.cfg.Store {
	case config.StoreSQLite:
		db, err := store.NewSQLite(filepath.Join(dir, "positions.db"))
		if err != nil {
			return nil, err
		}
		s.close = db.Close
		return db, nil
	default:
		return store.NewFile(filepath.Join(dir, "positions.json")), nil
	}
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Println("Server initialized")
	s.coord.Ready()
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	log.Println("Server shutting down")
	protocol.SetTraceValue(protocol.TraceValueOff)

	if s.watch != nil {
		if err := s.watch.Close(); err != nil {
			log.Printf("failed to close watcher: %v", err)
		}
	}

	err := s.coord.Shutdown()

	if s.close != nil {
		if cerr := s.close(); cerr != nil {
			log.Printf("failed to close store: %v", cerr)
		}
	}
	return err
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
