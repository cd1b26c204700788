package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/cache"
	"github.com/pjkaufman/obsidian-cursor-manager/internal/lifecycle"
)

// The server is the coordinator's Editor: programmatic moves go out as
// window/showDocument notifications with a selection. The current caret
// never has to be requested; the client's selection observer reports it
// unprompted, starting with one notification right after it attaches.
var _ lifecycle.Editor = (*Server)(nil)

// ShowCursor moves the client's caret to pos and scrolls it into view.
// The client's selection observer reports the move back as a regular
// selection notification.
func (s *Server) ShowCursor(key string, pos cache.Position) error {
	context := s.context()
	if context == nil {
		return fmt.Errorf("no client connection")
	}

	target := protocol.Position{Line: pos.Line, Character: pos.Ch}
	context.Notify("window/showDocument", protocol.ShowDocumentParams{
		URI:       protocol.URI(s.pathToURI(key)),
		TakeFocus: &protocol.True,
		Selection: &protocol.Range{Start: target, End: target},
	})
	return nil
}

func positionFromProtocol(p protocol.Position) cache.Position {
	return cache.Position{Line: uint32(p.Line), Ch: uint32(p.Character)}
}
