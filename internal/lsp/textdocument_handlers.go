package lsp

import (
	"log"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	key, err := s.uriToPath(params.TextDocument.URI)
	if err != nil {
		log.Printf("ignoring open outside workspace: %v", err)
		return nil
	}
	s.coord.DocumentOpened(key)
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	key, err := s.uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.coord.DocumentClosed(key)
	return nil
}

func (s *Server) selectionChanged(
	context *glsp.Context,
	params *protocol.TextDocumentPositionParams,
) error {
	key, err := s.uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.coord.CursorMoved(key, positionFromProtocol(params.Position))
	return nil
}

func (s *Server) workspaceDidRenameFiles(
	context *glsp.Context,
	params *protocol.RenameFilesParams,
) error {
	for _, f := range params.Files {
		oldKey, err := s.uriToPath(f.OldURI)
		if err != nil {
			continue
		}
		newKey, err := s.uriToPath(f.NewURI)
		if err != nil {
			continue
		}
		s.coord.DocumentRenamed(oldKey, newKey)
	}
	return nil
}

func (s *Server) workspaceDidDeleteFiles(
	context *glsp.Context,
	params *protocol.DeleteFilesParams,
) error {
	for _, f := range params.Files {
		key, err := s.uriToPath(f.URI)
		if err != nil {
			continue
		}
		s.coord.DocumentDeleted(key)
	}
	return nil
}
