package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultGeometry(t *testing.T) {
	g := DefaultGeometry()

	require.Equal(t, 2, g.Mask.SubSize)
	require.Equal(t, 0.1, g.Mask.PixelScaleY)
	require.Equal(t, 0.1, g.Mask.PixelScaleX)
	require.Equal(t, 0.0, g.Mask.OriginY)
	require.Equal(t, 0.0, g.Mask.OriginX)
	require.True(t, g.Output.Verbose)
	require.NotEmpty(t, g.Grid.RadialMinimum)
	require.Greater(t, g.Grid.RadialMinimumDefault, 0.0)
}

func TestRadialMinimum(t *testing.T) {
	g := DefaultGeometry()

	require.Equal(t, 1.0e-4, g.RadialMinimum("point"))
	require.Equal(t, 1.0e-6, g.RadialMinimum("sersic"))
	require.Equal(t, g.Grid.RadialMinimumDefault, g.RadialMinimum("no-such-profile"),
		"unknown identifiers fall back to the default")
}

func TestLoadGeometryMissingFile(t *testing.T) {
	g, err := LoadGeometry(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultGeometry().Mask.SubSize, g.Mask.SubSize)
}

func TestLoadGeometryOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.yaml")
	content := `grid:
  radialMinimum:
    sersic: 0.01
mask:
  subSize: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	g, err := LoadGeometry(path)
	require.NoError(t, err)

	require.Equal(t, 4, g.Mask.SubSize)
	require.Equal(t, 0.01, g.RadialMinimum("sersic"), "file value overrides the default")
	require.Equal(t, 1.0e-4, g.RadialMinimum("point"), "defaults survive for keys the file omits")
	require.Equal(t, 0.1, g.Mask.PixelScaleY, "defaults survive for sections the file omits")
}

func TestLoadGeometryInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [not: a mapping"), 0644))

	_, err := LoadGeometry(path)
	require.Error(t, err)
}

func TestSaveAndLoadGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "geometry.yaml")

	g := DefaultGeometry()
	g.Mask.SubSize = 8
	g.Mask.PixelScaleY = 0.05
	g.Grid.RadialMinimum["custom"] = 0.5
	require.NoError(t, SaveGeometry(g, path))

	loaded, err := LoadGeometry(path)
	require.NoError(t, err)
	require.Equal(t, 8, loaded.Mask.SubSize)
	require.Equal(t, 0.05, loaded.Mask.PixelScaleY)
	require.Equal(t, 0.5, loaded.RadialMinimum("custom"))
}

func TestCreateDefaultGeometryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.yaml")
	require.NoError(t, CreateDefaultGeometryFile(path))

	loaded, err := LoadGeometry(path)
	require.NoError(t, err)
	require.Equal(t, DefaultGeometry().Grid.RadialMinimumDefault, loaded.Grid.RadialMinimumDefault)
	require.Equal(t, DefaultGeometry().Mask.SubSize, loaded.Mask.SubSize)
}
