package dem

import (
	"math"

	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/floats"
)

// DefaultNoData is the sentinel written into cells with no elevation
// sample, matching the common ESRI ASCII grid convention.
const DefaultNoData = -9999.0

// Transform is a GDAL-style six-coefficient affine geotransform:
//
//	x = t[0] + c*t[1] + r*t[2]
//	y = t[3] + c*t[4] + r*t[5]
//
// where (c, r) is a column/row position and (x, y) is lon/lat. The
// grids built here are axis-aligned, so t[2] and t[4] are always zero
// and t[5] is negative (row 0 is the northern edge).
type Transform [6]float64

// Apply maps a fractional column/row position to geographic coordinates.
func (t Transform) Apply(c, r float64) (x, y float64) {
	return t[0] + c*t[1] + r*t[2], t[3] + c*t[4] + r*t[5]
}

// Invert maps geographic coordinates back to a fractional column/row.
// Only valid for axis-aligned transforms.
func (t Transform) Invert(x, y float64) (c, r float64) {
	return (x - t[0]) / t[1], (y - t[3]) / t[5]
}

// CellWidth returns the horizontal cell size in degrees.
func (t Transform) CellWidth() float64 { return t[1] }

// CellHeight returns the vertical cell size in degrees (positive).
func (t Transform) CellHeight() float64 { return -t[5] }

// Grid is a raster of elevation samples over a geographic extent.
type Grid struct {
	Ncols, Nrows int
	Transform    Transform
	NoData       float64

	// Data is row-major, row 0 northernmost: Data[r*Ncols+c].
	Data []float64
}

// NewGrid allocates a grid covering bound with the given cell size.
// The extent is padded up to whole steps, so the grid covers at least
// bound and at most bound plus one step on each axis. Every cell is
// initialized to NoData.
func NewGrid(bound orb.Bound, step float64) *Grid {
	ncols := int(math.Ceil((bound.Max.Lon() - bound.Min.Lon()) / step))
	nrows := int(math.Ceil((bound.Max.Lat() - bound.Min.Lat()) / step))
	if ncols < 1 {
		ncols = 1
	}
	if nrows < 1 {
		nrows = 1
	}

	g := &Grid{
		Ncols:  ncols,
		Nrows:  nrows,
		NoData: DefaultNoData,
		Transform: Transform{
			bound.Min.Lon(), step, 0,
			bound.Min.Lat() + float64(nrows)*step, 0, -step,
		},
		Data: make([]float64, ncols*nrows),
	}
	for i := range g.Data {
		g.Data[i] = g.NoData
	}
	return g
}

// Z returns the elevation at (c, r). It panics if out of bounds.
func (g *Grid) Z(c, r int) float64 { return g.Data[r*g.Ncols+c] }

// SetZ stores an elevation at (c, r). It panics if out of bounds.
func (g *Grid) SetZ(c, r int, z float64) { g.Data[r*g.Ncols+c] = z }

// IsNoData reports whether the cell at (c, r) holds the sentinel.
func (g *Grid) IsNoData(c, r int) bool { return g.Z(c, r) == g.NoData }

// CellCenter returns the geographic center of the cell at (c, r).
func (g *Grid) CellCenter(c, r int) (lon, lat float64) {
	return g.Transform.Apply(float64(c)+0.5, float64(r)+0.5)
}

// Index returns the cell containing (lon, lat), and whether that cell
// is inside the grid.
func (g *Grid) Index(lon, lat float64) (c, r int, ok bool) {
	fc, fr := g.Transform.Invert(lon, lat)
	c, r = int(math.Floor(fc)), int(math.Floor(fr))
	return c, r, c >= 0 && c < g.Ncols && r >= 0 && r < g.Nrows
}

// Bound returns the geographic extent covered by the grid.
func (g *Grid) Bound() orb.Bound {
	x0, y0 := g.Transform.Apply(0, float64(g.Nrows))
	x1, y1 := g.Transform.Apply(float64(g.Ncols), 0)
	return orb.Bound{Min: orb.Point{x0, y0}, Max: orb.Point{x1, y1}}
}

// MinMax returns the smallest and largest elevation, ignoring NoData
// cells. ok is false when the grid holds no valid sample at all.
func (g *Grid) MinMax() (min, max float64, ok bool) {
	valid := make([]float64, 0, len(g.Data))
	for _, z := range g.Data {
		if z != g.NoData {
			valid = append(valid, z)
		}
	}
	if len(valid) == 0 {
		return 0, 0, false
	}
	return floats.Min(valid), floats.Max(valid), true
}

// MeanLat returns the latitude of the grid's vertical midpoint. Used
// to convert degree cell sizes to meters when shading.
func (g *Grid) MeanLat() float64 {
	b := g.Bound()
	return (b.Min.Lat() + b.Max.Lat()) / 2
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := *g
	out.Data = make([]float64, len(g.Data))
	copy(out.Data, g.Data)
	return &out
}
