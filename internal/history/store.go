// Package history persists the two bounded prediction logs.
//
// The store is the sole source of truth: nothing is cached across
// operations, every read goes back to disk. Both logs are JSON arrays
// under named keys, newest record first, truncated to a fixed cap on
// every insertion.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neuroscanhq/neuroscan/internal/xdg"
)

// ErrNotFound indicates the key has never been written.
var ErrNotFound = errors.New("history key not found")

// Store abstracts durable key-value persistence for history logs.
type Store interface {
	// Read returns the raw bytes stored under key, or ErrNotFound.
	Read(key string) ([]byte, error)

	// Write replaces the value stored under key.
	Write(key string, data []byte) error

	// Clear removes the key. Clearing an absent key is not an error.
	Clear(key string) error
}

// fileStore implements Store using one JSON file per key.
type fileStore struct {
	dir string
}

// NewFileStore creates a Store rooted at dir.
func NewFileStore(dir string) Store {
	return &fileStore{dir: dir}
}

// NewStore creates the production Store under the XDG data dir.
func NewStore() Store {
	return &fileStore{dir: filepath.Join(xdg.DataDir(), "history")}
}

func (f *fileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileStore) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

func (f *fileStore) Write(key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	if err := os.WriteFile(f.path(key), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (f *fileStore) Clear(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing %s: %w", key, err)
	}
	return nil
}
