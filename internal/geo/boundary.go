package geo

import (
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Boundary errors.
var (
	// ErrNoPolygon indicates the GeoJSON contained no Polygon or
	// MultiPolygon feature.
	ErrNoPolygon = errors.New("geo: no polygonal feature in boundary file")
)

// Boundary is a region outline: a single Polygon or MultiPolygon plus
// the region name, when the source feature carried one.
type Boundary struct {
	// Name is the region name from the feature's "name" property
	// (or "NAME"); empty when the source has neither.
	Name string

	// Geometry is orb.Polygon or orb.MultiPolygon, nothing else.
	Geometry orb.Geometry
}

// LoadBoundary reads a boundary from a GeoJSON file. The file may hold
// a FeatureCollection, a single Feature, or a bare geometry; the first
// Polygon or MultiPolygon found becomes the boundary.
func LoadBoundary(path string) (*Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geo: reading boundary: %w", err)
	}
	b, err := ParseBoundary(data)
	if err != nil {
		return nil, fmt.Errorf("geo: %s: %w", path, err)
	}
	return b, nil
}

// ParseBoundary parses GeoJSON bytes into a Boundary.
func ParseBoundary(data []byte) (*Boundary, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		for _, f := range fc.Features {
			if b, ok := fromFeature(f); ok {
				return b, nil
			}
		}
		return nil, ErrNoPolygon
	}

	if f, err := geojson.UnmarshalFeature(data); err == nil {
		if b, ok := fromFeature(f); ok {
			return b, nil
		}
		return nil, ErrNoPolygon
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("parsing GeoJSON: %w", err)
	}
	if b, ok := fromGeometry(g.Geometry(), ""); ok {
		return b, nil
	}
	return nil, ErrNoPolygon
}

func fromFeature(f *geojson.Feature) (*Boundary, bool) {
	name := f.Properties.MustString("name", "")
	if name == "" {
		name = f.Properties.MustString("NAME", "")
	}
	return fromGeometry(f.Geometry, name)
}

func fromGeometry(g orb.Geometry, name string) (*Boundary, bool) {
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return &Boundary{Name: name, Geometry: g}, true
	}
	return nil, false
}

// Bound returns the geographic bounding box of the boundary.
func (b *Boundary) Bound() orb.Bound {
	return b.Geometry.Bound()
}

// Contains reports whether the point (lon, lat) lies inside the region.
// Ring orientation does not matter; holes are respected.
func (b *Boundary) Contains(lon, lat float64) bool {
	pt := orb.Point{lon, lat}
	switch g := b.Geometry.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	}
	return false
}

// Rings returns the total number of rings, outer and inner, across all
// polygons of the boundary.
func (b *Boundary) Rings() int {
	switch g := b.Geometry.(type) {
	case orb.Polygon:
		return len(g)
	case orb.MultiPolygon:
		n := 0
		for _, p := range g {
			n += len(p)
		}
		return n
	}
	return 0
}

// Vertices returns the total vertex count across all rings.
func (b *Boundary) Vertices() int {
	n := 0
	switch g := b.Geometry.(type) {
	case orb.Polygon:
		for _, r := range g {
			n += len(r)
		}
	case orb.MultiPolygon:
		for _, p := range g {
			for _, r := range p {
				n += len(r)
			}
		}
	}
	return n
}
