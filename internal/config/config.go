// Package config holds the server options supplied by the client via
// LSP initialization options, merged over defaults.
package config

import (
	"encoding/json"
	"fmt"
)

// Store backend names.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	// Store selects the persistence backend: "file" (JSON) or "sqlite".
	Store string `json:"store"`

	// StateDir overrides where persisted state lives. Empty means the
	// XDG state directory.
	StateDir string `json:"state_dir"`
}

var defaultConfig = Config{
	Store: StoreFile,
}

// Default returns the built-in configuration.
func Default() Config {
	return defaultConfig
}

// Load merges the client-provided initialization options over base.
// Only fields present in v overwrite.
func Load(base Config, v any) (Config, error) {
	cfg := base
	if v == nil {
		return cfg, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Config{}, fmt.Errorf("failed to marshal options: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal into Config: %w", err)
	}

	if cfg.Store != StoreFile && cfg.Store != StoreSQLite {
		return Config{}, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
	return cfg, nil
}
