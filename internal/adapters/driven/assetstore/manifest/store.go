// Package manifest implements the AssetStore port over a YAML manifest
// file, for teams that keep their brand asset catalog in version control
// instead of a database. The store watches the manifest and reloads it
// on change, so edits take effect without a restart.
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
	"github.com/custodia-labs/scenekit/internal/logger"
)

// Ensure Store implements the port.
var _ driven.AssetStore = (*Store)(nil)

// manifestFile is the on-disk manifest shape.
type manifestFile struct {
	Assets []manifestAsset `yaml:"assets"`
}

type manifestAsset struct {
	ID          string   `yaml:"id"`
	URL         string   `yaml:"url"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Type        string   `yaml:"type"`
	Category    string   `yaml:"category"`
	Keywords    []string `yaml:"keywords"`
	Priority    int      `yaml:"priority"`
	Default     bool     `yaml:"default"`
	MimeType    string   `yaml:"mime_type"`
	EntityType  string   `yaml:"entity_type"`
	EntityName  string   `yaml:"entity_name"`
	Inactive    bool     `yaml:"inactive"`
}

// Store serves assets from a YAML manifest, reloading on file change.
type Store struct {
	path    string
	watcher *fsnotify.Watcher

	mu     sync.RWMutex
	assets []domain.BrandAsset
	active map[string]bool
	closed bool
	done   chan struct{}
}

// NewStore loads the manifest at path and starts watching it for
// changes. The caller must Close the store to release the watcher.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, done: make(chan struct{})}
	if err := s.reload(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory, not the file: editors replace files on save,
	// which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching manifest directory: %w", err)
	}
	s.watcher = watcher
	go s.watch()

	return s, nil
}

// reload parses the manifest and swaps the in-memory snapshot.
func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading manifest: %w", err)
	}

	var mf manifestFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}

	assets := make([]domain.BrandAsset, 0, len(mf.Assets))
	active := make(map[string]bool, len(mf.Assets))
	for _, a := range mf.Assets {
		assets = append(assets, domain.BrandAsset{
			ID:          a.ID,
			URL:         a.URL,
			Name:        a.Name,
			Description: a.Description,
			AssetType:   a.Type,
			Category:    domain.AssetCategory(a.Category),
			Keywords:    a.Keywords,
			Priority:    a.Priority,
			IsDefault:   a.Default,
			MimeType:    a.MimeType,
			EntityType:  a.EntityType,
			EntityName:  a.EntityName,
		})
		active[a.ID] = !a.Inactive
	}

	s.mu.Lock()
	s.assets = assets
	s.active = active
	s.mu.Unlock()
	return nil
}

// watch reloads on writes to the manifest file. A broken intermediate
// state (editor mid-save) keeps the previous snapshot.
func (s *Store) watch() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.reload(); err != nil {
				logger.Warn("manifest reload failed: %v (keeping previous snapshot)", err)
				continue
			}
			logger.Debug("manifest reloaded: %s", s.path)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("manifest watcher error: %v", err)
		}
	}
}

// QueryAssets returns assets matching the filter, in manifest order. An
// empty filter matches everything; the legs combine with OR.
func (s *Store) QueryAssets(_ context.Context, filter driven.AssetFilter) ([]domain.BrandAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	var out []domain.BrandAsset
	for _, asset := range s.assets {
		if filter.ActiveOnly && !s.active[asset.ID] {
			continue
		}
		if matches(asset, filter) {
			out = append(out, asset)
		}
	}
	return out, nil
}

// matches applies the inclusive-OR filter semantics.
func matches(asset domain.BrandAsset, filter driven.AssetFilter) bool {
	if filter.Empty() {
		return true
	}
	for _, t := range filter.Types {
		if asset.AssetType != "" && asset.AssetType == t {
			return true
		}
	}
	if filter.Category != "" && asset.Category == filter.Category {
		return true
	}
	for _, kw := range filter.KeywordsAny {
		for _, have := range asset.Keywords {
			if have == kw {
				return true
			}
		}
	}
	return false
}

// Close stops the watcher. Queries after Close fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
