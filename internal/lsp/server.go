// Package lsp exposes the cursor manager over LSP. The host editor is
// the document store and caret surface; its lifecycle notifications
// drive the coordinator.
package lsp

import (
	"encoding/json"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/config"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/lifecycle"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/watcher"
)

const (
	lsName = "cursor-manager"

	// MethodSelectionChanged is the client notification delivering caret
	// movement, carrying TextDocumentPositionParams. The client sends it
	// on every selection change, including programmatic moves, and once
	// immediately after attaching its selection observer. That first
	// notification doubles as the caret read after an open; the server
	// never requests the position.
	MethodSelectionChanged = "cursorManager/selectionChanged"
)

var version = "0.1.0"

type Server struct {
	handler  *protocol.Handler
	defaults config.Config
	cfg      config.Config

	rootURI  string
	rootPath string

	coord *lifecycle.Coordinator
	watch *watcher.Watcher
	close func() error // store teardown, set when the backend needs one

	ctxMu   sync.Mutex
	glspCtx *glsp.Context
}

// NewServer builds the LSP server. defaults seed the configuration until
// the client's initialization options arrive.
func NewServer(defaults config.Config) (*server.Server, error) {
	s := &Server{defaults: defaults}

	s.handler = &protocol.Handler{
		Initialize:              s.initialize,
		Initialized:             s.initialized,
		Shutdown:                s.shutdown,
		SetTrace:                s.setTrace,
		TextDocumentDidOpen:     s.textDocumentDidOpen,
		TextDocumentDidClose:    s.textDocumentDidClose,
		WorkspaceDidRenameFiles: s.workspaceDidRenameFiles,
		WorkspaceDidDeleteFiles: s.workspaceDidDeleteFiles,
	}

	return server.NewServer(s, lsName, false), nil
}

// Handle intercepts the custom selection notification and delegates
// everything else to the protocol handler.
func (s *Server) Handle(context *glsp.Context) (any, bool, bool, error) {
	s.retainContext(context)

	if context.Method == MethodSelectionChanged {
		var params protocol.TextDocumentPositionParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		return nil, true, true, s.selectionChanged(context, &params)
	}

	return s.handler.Handle(context)
}

// retainContext keeps the latest connection-bound context so caret
// requests issued from timers (restore retries) can reach the client.
func (s *Server) retainContext(context *glsp.Context) {
	s.ctxMu.Lock()
	s.glspCtx = context
	s.ctxMu.Unlock()
}

func (s *Server) context() *glsp.Context {
	s.ctxMu.Lock()
	defer s.ctxMu.Unlock()
	return s.glspCtx
}
