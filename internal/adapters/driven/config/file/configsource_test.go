package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	src, err := NewConfigSource(t.TempDir())
	require.NoError(t, err)

	cfg, err := src.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEngineConfig(), cfg)
}

func TestLoad_PartialFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	src, err := NewConfigSource(dir)
	require.NoError(t, err)

	content := `
safe_zone_margin = 48

[weights]
type_match = 40

[placement]
reject_below = 25
`
	require.NoError(t, os.WriteFile(src.Path(), []byte(content), 0600))

	cfg, err := src.Load()
	require.NoError(t, err)

	assert.Equal(t, 48, cfg.SafeZoneMargin)
	assert.Equal(t, 40, cfg.Weights.TypeMatch)
	assert.Equal(t, 25, cfg.Placement.RejectBelow)
	// Keys the file does not set keep their defaults.
	assert.Equal(t, 25, cfg.Weights.SubQualifier)
	assert.Equal(t, 0.5, cfg.WatermarkOpacityCeiling)
	assert.Equal(t, 100, cfg.Placement.FacePenalty)
}

func TestLoad_MalformedFileFailsWithDefaults(t *testing.T) {
	src, err := NewConfigSource(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src.Path(), []byte("not = [valid"), 0600))

	cfg, err := src.Load()

	assert.Error(t, err)
	assert.Equal(t, domain.DefaultEngineConfig(), cfg)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	src, err := NewConfigSource(t.TempDir())
	require.NoError(t, err)

	cfg := domain.DefaultEngineConfig()
	cfg.SafeZoneMargin = 64
	cfg.Weights.DirectNameHit = 99
	require.NoError(t, err)
	require.NoError(t, src.Save(cfg))

	got, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestNewConfigSource_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	src, err := NewConfigSource(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), src.Path())
	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}
