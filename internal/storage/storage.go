// ABOUTME: Client-local key/value storage for persisted session values
// ABOUTME: Backends: JSON file in the config dir, Redis, or in-memory

package storage

import (
	"context"
	"os"
	"path/filepath"
)

// Storage holds string values under string keys. Missing keys are not an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "inventario")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inventario")
}
