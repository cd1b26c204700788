package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// uriToPath converts a document URI into a workspace-relative key.
func (s *Server) uriToPath(docURI protocol.URI) (string, error) {
	uri, err := url.Parse(docURI)
	if err != nil {
		return "", fmt.Errorf("failed to parse uri: %w", err)
	}

	root, err := url.Parse(s.rootURI)
	if err != nil {
		return "", fmt.Errorf("failed to parse root uri: %w", err)
	}

	if uri.Scheme != root.Scheme || uri.Host != root.Host {
		return "", fmt.Errorf("uri and root uri do not share the same scheme or host")
	}

	// The prefix must end at a path segment boundary, otherwise a
	// sibling such as /vault-old matches a root of /vault.
	rootPath := strings.TrimSuffix(root.Path, "/")
	if !strings.HasPrefix(uri.Path, rootPath+"/") {
		return "", fmt.Errorf("document %s is outside the workspace", uri.Path)
	}

	return strings.TrimPrefix(uri.Path, rootPath+"/"), nil
}

// pathToURI converts a workspace-relative key back into a document URI.
func (s *Server) pathToURI(relpath string) protocol.URI {
	root, err := url.Parse(s.rootURI)
	if err != nil {
		return protocol.URI(relpath)
	}
	root.Path = path.Join(root.Path, relpath)
	return protocol.URI(root.String())
}

func getXDGStateHome(appName string) (string, error) {
	xdgStateHome := os.Getenv("XDG_STATE_HOME")
	if xdgStateHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		xdgStateHome = filepath.Join(homeDir, ".local", "state")
	}

	appStateDir := filepath.Join(xdgStateHome, appName)
	if err := os.MkdirAll(appStateDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}
	return appStateDir, nil
}
