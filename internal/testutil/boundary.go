package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reliefmap/relief/internal/geo"
)

// SquareBoundary returns a square polygon boundary with the given
// southwest corner and edge length in degrees.
func SquareBoundary(t *testing.T, name string, lon, lat, size float64) *geo.Boundary {
	t.Helper()
	b, err := geo.ParseBoundary([]byte(SquareGeoJSON(name, lon, lat, size)))
	require.NoError(t, err)
	return b
}

// SquareGeoJSON returns a FeatureCollection holding one square polygon.
func SquareGeoJSON(name string, lon, lat, size float64) string {
	return fmt.Sprintf(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {"name": %q},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[%g,%g],[%g,%g],[%g,%g],[%g,%g],[%g,%g]]]
			}
		}]
	}`, name,
		lon, lat, lon+size, lat, lon+size, lat+size, lon, lat+size, lon, lat)
}

// WriteSquareBoundary writes a square boundary GeoJSON file into dir
// and returns its path.
func WriteSquareBoundary(t *testing.T, dir, name string, lon, lat, size float64) string {
	t.Helper()
	path := filepath.Join(dir, "boundary.geojson")
	require.NoError(t, os.WriteFile(path, []byte(SquareGeoJSON(name, lon, lat, size)), 0644))
	return path
}
