package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scenekit/internal/core/domain"
)

const testComposeRequest = `scene_id: scene-3
background: https://cdn.test/bg.png
products:
  - asset_id: p1
    url: https://cdn.test/serum.png
    x: 50
    y: 80
    anchor: bottom-center
    scale: 1.0
    max_width_pct: 40
    z_index: 2
    shadow:
      blur: 20
      opacity: 0.4
logo:
  asset_id: l1
  url: https://cdn.test/logo.png
  position: top-right
  size: medium
  opacity: 0.9
  type: primary
output:
  width: 1920
  height: 1080
  format: png
`

func writeComposeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "request.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadComposeRequest_MapsAllFields(t *testing.T) {
	path := writeComposeFile(t, testComposeRequest)

	req, err := loadComposeRequest(path)

	require.NoError(t, err)
	assert.Equal(t, "scene-3", req.SceneID)
	assert.Equal(t, "https://cdn.test/bg.png", req.BackgroundURL)
	assert.Equal(t, 1920, req.Output.Width)

	require.Len(t, req.Products, 1)
	p := req.Products[0]
	assert.Equal(t, "p1", p.AssetID)
	assert.Equal(t, domain.AnchorBottomCenter, p.Anchor)
	assert.Equal(t, 40.0, p.MaxWidthPct)
	assert.Equal(t, 2, p.ZIndex)
	require.NotNil(t, p.Shadow)
	assert.Equal(t, 20, p.Shadow.Blur)

	require.NotNil(t, req.Logo)
	assert.Equal(t, domain.AnchorTopRight, req.Logo.Position)
	assert.Equal(t, domain.LogoMedium, req.Logo.Size)
	assert.Equal(t, domain.LogoPrimary, req.Logo.LogoType)
}

func TestLoadComposeRequest_MissingFile(t *testing.T) {
	_, err := loadComposeRequest(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read request file")
}

func TestLoadComposeRequest_MalformedYAML(t *testing.T) {
	path := writeComposeFile(t, "products: [broken")

	_, err := loadComposeRequest(path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse request file")
}

func TestLoadComposeRequest_NoLogo(t *testing.T) {
	path := writeComposeFile(t, "scene_id: s1\nbackground: https://cdn.test/bg.png\n")

	req, err := loadComposeRequest(path)

	require.NoError(t, err)
	assert.Nil(t, req.Logo)
	assert.Empty(t, req.Products)
}
