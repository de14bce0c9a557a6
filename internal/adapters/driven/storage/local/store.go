// Package local implements the BlobStore port on the local filesystem,
// for development and single-machine deployments. Uploaded artifacts are
// addressable as file:// URLs.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// Ensure Store implements the port.
var _ driven.BlobStore = (*Store)(nil)

// Store writes artifacts under a base directory.
type Store struct {
	dir string
}

// NewStore creates a blob store rooted at dir, creating it if needed.
// If dir is empty, defaults to ~/.scenekit/artifacts.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".scenekit", "artifacts")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating artifact directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the artifact directory.
func (s *Store) Dir() string { return s.dir }

// Upload writes the bytes under key and returns a file:// URL. Keys are
// flattened to their base name so a crafted key cannot escape the
// artifact directory.
func (s *Store) Upload(_ context.Context, data []byte, key, _ string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("upload: empty key")
	}
	name := filepath.Base(filepath.Clean(key))
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("upload: invalid key %q", key)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing artifact: %w", err)
	}
	return "file://" + strings.ReplaceAll(path, string(filepath.Separator), "/"), nil
}
