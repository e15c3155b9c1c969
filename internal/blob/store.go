// Package blob implements the byte-storage collaborator behind attachment
// metadata. The core only ever hands it storage keys to release.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FSStore releases blobs stored as files under a base directory, addressed
// by relative storage key.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a store rooted at baseDir.
func NewFSStore(baseDir string) *FSStore {
	return &FSStore{baseDir: baseDir}
}

// Release deletes the file behind the storage key. A key that is already
// gone is not an error; metadata deletion must stay idempotent against
// earlier partial releases.
func (s *FSStore) Release(_ context.Context, storageKey string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("releasing blob %s: %w", storageKey, err)
	}
	return nil
}

// resolve maps a storage key onto the base directory, refusing keys that
// would escape it.
func (s *FSStore) resolve(storageKey string) (string, error) {
	if storageKey == "" {
		return "", fmt.Errorf("empty storage key")
	}
	cleaned := filepath.Clean(filepath.FromSlash(storageKey))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("storage key %q escapes blob directory", storageKey)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// NoopStore ignores releases. Used when blob payloads live elsewhere or in
// tests that only care about metadata.
type NoopStore struct{}

// NewNoopStore creates a NoopStore.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (*NoopStore) Release(context.Context, string) error {
	return nil
}
