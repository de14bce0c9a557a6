// Package memory provides an in-memory asset store, used as the test
// fixture repository and for embedding the engine without a database.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.AssetStore = (*Store)(nil)

// Store is an in-memory implementation of driven.AssetStore. Assets are
// returned in insertion order, which gives the matcher its stable tie
// ordering.
type Store struct {
	mu     sync.RWMutex
	assets []domain.BrandAsset
	closed bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Add appends assets to the store, preserving order.
func (s *Store) Add(assets ...domain.BrandAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = append(s.assets, assets...)
}

// QueryAssets returns snapshots matching the inclusive-OR filter.
func (s *Store) QueryAssets(_ context.Context, filter driven.AssetFilter) ([]domain.BrandAsset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, domain.ErrStoreClosed
	}

	out := make([]domain.BrandAsset, 0, len(s.assets))
	for _, asset := range s.assets {
		if matches(asset, filter) {
			out = append(out, asset)
		}
	}
	return out, nil
}

// matches applies the inclusive OR: type, category, or keyword.
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
			if kw == have {
				return true
			}
		}
	}
	return false
}

// Close marks the store closed; further queries fail.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
