package config_test

import (
	"testing"

	"github.com/pjkaufman/obsidian-cursor-manager/internal/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		options  any
		expected config.Config
		wantErr  bool
	}{
		{
			name:     "nil options keep defaults",
			options:  nil,
			expected: config.Config{Store: config.StoreFile},
		},
		{
			name:     "empty map keeps defaults",
			options:  map[string]any{},
			expected: config.Config{Store: config.StoreFile},
		},
		{
			name:     "store override",
			options:  map[string]any{"store": "sqlite"},
			expected: config.Config{Store: config.StoreSQLite},
		},
		{
			name:    "state dir override keeps default store",
			options: map[string]any{"state_dir": "/tmp/cursors"},
			expected: config.Config{
				Store:    config.StoreFile,
				StateDir: "/tmp/cursors",
			},
		},
		{
			name:    "unknown store rejected",
			options: map[string]any{"store": "redis"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.Load(config.Default(), tt.options)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Load() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
