package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareCollection = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "Square County"},
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[0,0],[4,0],[4,4],[0,4],[0,0]]]
			}
		}
	]
}`

func TestLoadBoundaryFeatureCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.geojson")
	require.NoError(t, os.WriteFile(path, []byte(squareCollection), 0644))

	b, err := LoadBoundary(path)
	require.NoError(t, err)
	assert.Equal(t, "Square County", b.Name)
	assert.Equal(t, 1, b.Rings())
	assert.Equal(t, 5, b.Vertices())

	bound := b.Bound()
	assert.Equal(t, 0.0, bound.Min.Lon())
	assert.Equal(t, 4.0, bound.Max.Lat())
}

func TestLoadBoundaryMissingFile(t *testing.T) {
	_, err := LoadBoundary(filepath.Join(t.TempDir(), "nope.geojson"))
	require.Error(t, err)
}

func TestParseBoundaryBareGeometry(t *testing.T) {
	raw := `{"type":"Polygon","coordinates":[[[10,10],[12,10],[12,12],[10,12],[10,10]]]}`
	b, err := ParseBoundary([]byte(raw))
	require.NoError(t, err)
	assert.Empty(t, b.Name)
	assert.True(t, b.Contains(11, 11))
}

func TestParseBoundaryNoPolygon(t *testing.T) {
	raw := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}}
	]}`
	_, err := ParseBoundary([]byte(raw))
	require.ErrorIs(t, err, ErrNoPolygon)
}

func TestParseBoundaryInvalidJSON(t *testing.T) {
	_, err := ParseBoundary([]byte("{not json"))
	require.Error(t, err)
}

func TestContains(t *testing.T) {
	b, err := ParseBoundary([]byte(squareCollection))
	require.NoError(t, err)

	assert.True(t, b.Contains(2, 2))
	assert.False(t, b.Contains(5, 2))
	assert.False(t, b.Contains(-1, -1))
}

func TestContainsMultiPolygonWithHole(t *testing.T) {
	raw := `{"type":"MultiPolygon","coordinates":[
		[[[0,0],[10,0],[10,10],[0,10],[0,0]],
		 [[4,4],[6,4],[6,6],[4,6],[4,4]]],
		[[[20,20],[22,20],[22,22],[20,22],[20,20]]]
	]}`
	b, err := ParseBoundary([]byte(raw))
	require.NoError(t, err)

	assert.True(t, b.Contains(1, 1), "inside first polygon")
	assert.False(t, b.Contains(5, 5), "inside the hole")
	assert.True(t, b.Contains(21, 21), "inside second polygon")
	assert.False(t, b.Contains(15, 15), "between polygons")
	assert.Equal(t, 3, b.Rings())
}
