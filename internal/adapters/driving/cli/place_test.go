package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlaceRequest = `overlays:
  - id: o1
    text: Rest easier tonight
    type: title
  - id: o2
    text: Dr. Amara Osei, Sleep Researcher
    type: lower-third
frame:
  faces:
    - x: 40
      y: 20
      width: 20
      height: 30
  safe_anchors:
    - top-center
`

func TestPlaceCmd_Use(t *testing.T) {
	assert.Equal(t, "place [overlays.yaml]", placeCmd.Use)
}

func TestPlaceCmd_ExecutesWithOverlayFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "overlays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testPlaceRequest), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"place", path, "--duration", "10"})
	defer func() {
		rootCmd.SetArgs(nil)
		placeDuration = 10
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "title")
	assert.Contains(t, buf.String(), "lower-third")
	assert.Contains(t, buf.String(), "2 unique, 2 placed, 0 skipped")
}

func TestPlaceCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"place", filepath.Join(t.TempDir(), "absent.yaml")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read overlays file")
}
