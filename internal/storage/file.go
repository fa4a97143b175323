// ABOUTME: File-backed storage under the XDG config directory
// ABOUTME: Values live in one JSON object that is replaced atomically on write

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileName is the storage file inside the config directory
const FileName = "session.json"

// File stores values in <configDir>/session.json
type File struct {
	configDir string
	mu        sync.Mutex
}

// NewFile creates a file storage rooted at configDir
func NewFile(configDir string) *File {
	return &File{configDir: configDir}
}

// path returns the storage file path
func (f *File) path() string {
	return filepath.Join(f.configDir, FileName)
}

// Get implements Storage
func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set implements Storage
func (f *File) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

// Remove implements Storage
func (f *File) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

// load reads the file; a missing or corrupt file reads as empty
func (f *File) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path())
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session storage: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// Invalid JSON, start fresh
		return map[string]string{}, nil
	}
	return values, nil
}

// save writes to a temp file and renames it over the old one
func (f *File) save(values map[string]string) error {
	// Ensure directory exists
	if err := os.MkdirAll(f.configDir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.configDir, FileName+".*")
	if err != nil {
		return fmt.Errorf("write session storage: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write session storage: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write session storage: %w", err)
	}
	return nil
}
