package dem_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefmap/relief/internal/dem"
	"github.com/reliefmap/relief/internal/testutil"
)

const testResolution = 11 // tiny tiles keep fixtures small

func TestTileFilename(t *testing.T) {
	tests := []struct {
		lat, lon int
		want     string
	}{
		{37, -123, "N37W123.hgt"},
		{-4, 152, "S04E152.hgt"},
		{0, 0, "N00E000.hgt"},
		{-33, -71, "S33W071.hgt"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dem.TileFilename(tt.lat, tt.lon))
	}
}

func TestTileSetConstantTile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteHGTTile(t, dir, 46, 7, testResolution, testutil.ConstElev(1500))

	ts, err := dem.NewTileSet(dir, dem.WithResolution(testResolution))
	require.NoError(t, err)

	elevs, err := ts.Elevations(context.Background(), [][2]float64{
		{7.5, 46.5},
		{7.01, 46.99},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1500, elevs[0], 1e-9)
	assert.InDelta(t, 1500, elevs[1], 1e-9)
}

func TestTileSetBilinearInterpolation(t *testing.T) {
	dir := t.TempDir()
	// Elevation climbs 10 m per post from west to east.
	testutil.WriteHGTTile(t, dir, 0, 10, testResolution, func(r, c int) int16 {
		return int16(10 * c)
	})

	ts, err := dem.NewTileSet(dir, dem.WithResolution(testResolution))
	require.NoError(t, err)

	// Post spacing is 0.1 degrees at resolution 11. Halfway between
	// posts 3 and 4 the interpolated elevation is 35.
	elevs, err := ts.Elevations(context.Background(), [][2]float64{{10.35, 0.5}})
	require.NoError(t, err)
	assert.InDelta(t, 35, elevs[0], 1e-9)
}

func TestTileSetMissingTileIsNoData(t *testing.T) {
	ts, err := dem.NewTileSet(t.TempDir(), dem.WithResolution(testResolution))
	require.NoError(t, err)

	elevs, err := ts.Elevations(context.Background(), [][2]float64{{100.5, 40.5}})
	require.NoError(t, err)
	assert.Equal(t, dem.DefaultNoData, elevs[0])
}

func TestTileSetVoidIsNoData(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteHGTTile(t, dir, 10, 20, testResolution, testutil.ConstElev(-32768))

	ts, err := dem.NewTileSet(dir, dem.WithResolution(testResolution))
	require.NoError(t, err)

	elevs, err := ts.Elevations(context.Background(), [][2]float64{{20.5, 10.5}})
	require.NoError(t, err)
	assert.Equal(t, dem.DefaultNoData, elevs[0])
}

func TestTileSetSouthernWesternHemisphere(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteHGTTile(t, dir, -34, -72, testResolution, testutil.ConstElev(250))

	ts, err := dem.NewTileSet(dir, dem.WithResolution(testResolution))
	require.NoError(t, err)

	elevs, err := ts.Elevations(context.Background(), [][2]float64{{-71.4, -33.6}})
	require.NoError(t, err)
	assert.InDelta(t, 250, elevs[0], 1e-9)
}

func TestNewTileSetMissingDir(t *testing.T) {
	_, err := dem.NewTileSet("/does/not/exist")
	require.Error(t, err)
}

func TestTileSetCancelledContext(t *testing.T) {
	ts, err := dem.NewTileSet(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ts.Elevations(ctx, [][2]float64{{0.5, 0.5}})
	require.ErrorIs(t, err, context.Canceled)
}
