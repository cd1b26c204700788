package lsp

import "testing"

func TestURIToPath(t *testing.T) {
	s := &Server{rootURI: "file:///home/user/vault"}

	tests := []struct {
		name     string
		uri      string
		expected string
		wantErr  bool
	}{
		{
			name:     "top level document",
			uri:      "file:///home/user/vault/a.md",
			expected: "a.md",
		},
		{
			name:     "nested document",
			uri:      "file:///home/user/vault/notes/daily/b.md",
			expected: "notes/daily/b.md",
		},
		{
			name:    "outside workspace",
			uri:     "file:///home/user/other/c.md",
			wantErr: true,
		},
		{
			name:    "sibling directory sharing the root as string prefix",
			uri:     "file:///home/user/vault-old/a.md",
			wantErr: true,
		},
		{
			name:    "the root itself",
			uri:     "file:///home/user/vault",
			wantErr: true,
		},
		{
			name:    "different scheme",
			uri:     "untitled:///home/user/vault/a.md",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.uriToPath(tt.uri)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("uriToPath() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("uriToPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPathToURIRoundTrip(t *testing.T) {
	s := &Server{rootURI: "file:///home/user/vault"}

	keys := []string{"a.md", "notes/daily/b.md"}
	for _, key := range keys {
		uri := s.pathToURI(key)
		got, err := s.uriToPath(uri)
		if err != nil {
			t.Fatalf("round trip of %q failed: %v", key, err)
		}
		if got != key {
			t.Errorf("round trip of %q = %q", key, got)
		}
	}
}
