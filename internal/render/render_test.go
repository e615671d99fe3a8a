package render_test

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefmap/relief/internal/dem"
	"github.com/reliefmap/relief/internal/render"
	"github.com/reliefmap/relief/internal/shade"
	"github.com/reliefmap/relief/internal/testutil"
)

func bound(minLon, minLat, maxLon, maxLat float64) orb.Bound {
	return orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
}

func decodePNG(t *testing.T, path string) (w, h int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestWriteRelief2D(t *testing.T) {
	elev := testutil.ConeGrid(bound(7, 46, 8, 47), 0.02, 2500)
	hs := shade.Hillshade(elev, shade.DefaultParams)
	b := testutil.SquareBoundary(t, "Cone Valley", 7.2, 46.2, 0.6)

	path := filepath.Join(t.TempDir(), "relief.png")
	err := render.WriteRelief2D(path, elev, hs, b, render.TerrainPalette(), "Cone Valley")
	require.NoError(t, err)

	w, h := decodePNG(t, path)
	assert.Greater(t, w, elev.Ncols)
	assert.Greater(t, h, elev.Nrows)
}

func TestWriteRelief2DEmptyGrid(t *testing.T) {
	elev := dem.NewGrid(bound(0, 0, 1, 1), 0.5)
	hs := shade.Hillshade(elev, shade.DefaultParams)
	b := testutil.SquareBoundary(t, "empty", 0, 0, 1)

	err := render.WriteRelief2D(filepath.Join(t.TempDir(), "x.png"), elev, hs, b, render.TerrainPalette(), "")
	require.ErrorIs(t, err, render.ErrEmptyGrid)
}

func TestWriteSurface3D(t *testing.T) {
	elev := testutil.ConeGrid(bound(7, 46, 8, 47), 0.05, 2500)
	hs := shade.Hillshade(elev, shade.DefaultParams)

	path := filepath.Join(t.TempDir(), "surface.png")
	err := render.WriteSurface3D(path, elev, hs, render.TerrainPalette(), "Cone Valley")
	require.NoError(t, err)

	w, h := decodePNG(t, path)
	assert.Equal(t, 1000, w)
	assert.Equal(t, 760, h)
}

func TestWriteSurface3DHandlesNoDataHoles(t *testing.T) {
	elev := testutil.ConeGrid(bound(0, 0, 1, 1), 0.1, 1000)
	// Punch a hole in the middle.
	elev.SetZ(elev.Ncols/2, elev.Nrows/2, elev.NoData)
	hs := shade.Hillshade(elev, shade.DefaultParams)

	path := filepath.Join(t.TempDir(), "holes.png")
	require.NoError(t, render.WriteSurface3D(path, elev, hs, render.TerrainPalette(), ""))
}

func TestWriteSurface3DAllNoData(t *testing.T) {
	elev := dem.NewGrid(bound(0, 0, 1, 1), 0.5)
	hs := shade.Hillshade(elev, shade.DefaultParams)

	err := render.WriteSurface3D(filepath.Join(t.TempDir(), "x.png"), elev, hs, render.TerrainPalette(), "")
	require.ErrorIs(t, err, render.ErrEmptyGrid)
}

func TestWriteRelief2DUnwritablePath(t *testing.T) {
	elev := testutil.FlatGrid(bound(0, 0, 1, 1), 0.5, 10)
	hs := shade.Hillshade(elev, shade.DefaultParams)
	b := testutil.SquareBoundary(t, "flat", 0, 0, 1)

	err := render.WriteRelief2D(filepath.Join(t.TempDir(), "missing", "deep", "x.png"), elev, hs, b, render.TerrainPalette(), "")
	require.Error(t, err)
}
