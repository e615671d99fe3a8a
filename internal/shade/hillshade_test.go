package shade_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefmap/relief/internal/dem"
	"github.com/reliefmap/relief/internal/shade"
	"github.com/reliefmap/relief/internal/testutil"
)

func bound(minLon, minLat, maxLon, maxLat float64) orb.Bound {
	return orb.Bound{Min: orb.Point{minLon, minLat}, Max: orb.Point{maxLon, maxLat}}
}

// A flat surface has zero gradient everywhere, so every cell's
// illumination equals sin(altitude).
func TestHillshadeFlatSurface(t *testing.T) {
	g := testutil.FlatGrid(bound(5, 45, 6, 46), 0.1, 500)

	for _, alt := range []float64{10, 30, 45, 60, 90} {
		hs := shade.Hillshade(g, shade.Params{AzimuthDeg: 315, AltitudeDeg: alt})
		want := math.Sin(alt * math.Pi / 180)
		for _, v := range hs.Data {
			assert.InDelta(t, want, v, 1e-9, "altitude %g", alt)
		}
	}
}

func TestHillshadeRangeClamped(t *testing.T) {
	g := testutil.ConeGrid(bound(7, 46, 8, 47), 0.02, 3000)

	hs := shade.Hillshade(g, shade.DefaultParams)
	for _, v := range hs.Data {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestHillshadePreservesNoData(t *testing.T) {
	g := testutil.FlatGrid(bound(0, 0, 1, 1), 0.1, 100)
	g.SetZ(3, 3, g.NoData)
	g.SetZ(0, 9, g.NoData)

	hs := shade.Hillshade(g, shade.DefaultParams)
	assert.Equal(t, hs.NoData, hs.Z(3, 3))
	assert.Equal(t, hs.NoData, hs.Z(0, 9))

	// Neighbors of a NoData cell still get a value.
	assert.NotEqual(t, hs.NoData, hs.Z(3, 4))
}

func TestHillshadePreservesGeometry(t *testing.T) {
	g := testutil.ConeGrid(bound(0, 0, 1, 1), 0.25, 100)
	hs := shade.Hillshade(g, shade.DefaultParams)
	assert.Equal(t, g.Ncols, hs.Ncols)
	assert.Equal(t, g.Nrows, hs.Nrows)
	assert.Equal(t, g.Transform, hs.Transform)
}

// A slope facing the sun is brighter than the same slope facing away.
func TestHillshadeFacingSlopeBrighter(t *testing.T) {
	// Ramp rising to the east. With the sun in the east the west-
	// facing ramp is lit; with the sun in the west it is shadowed.
	g := testutil.RampGrid(bound(10, 50, 11, 51), 0.1, 2000)

	east := shade.Hillshade(g, shade.Params{AzimuthDeg: 90, AltitudeDeg: 30})
	west := shade.Hillshade(g, shade.Params{AzimuthDeg: 270, AltitudeDeg: 30})

	c, r := g.Ncols/2, g.Nrows/2
	assert.Less(t, east.Z(c, r), west.Z(c, r),
		"east-rising ramp faces west, so a western sun lights it")
}

func TestHillshadeZFactor(t *testing.T) {
	g := testutil.RampGrid(bound(0, 45, 1, 46), 0.1, 100)

	flat := shade.Hillshade(g, shade.Params{AzimuthDeg: 315, AltitudeDeg: 45})
	steep := shade.Hillshade(g, shade.Params{AzimuthDeg: 315, AltitudeDeg: 45, ZFactor: 50})

	c, r := g.Ncols/2, g.Nrows/2
	require.NotEqual(t, flat.Z(c, r), steep.Z(c, r))
}

func TestHillshadeAllNoData(t *testing.T) {
	g := dem.NewGrid(bound(0, 0, 1, 1), 0.5)
	hs := shade.Hillshade(g, shade.DefaultParams)
	for _, v := range hs.Data {
		assert.Equal(t, hs.NoData, v)
	}
}
