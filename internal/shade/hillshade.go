// Package shade computes the hillshade illumination raster used by
// both plots: Horn gradients over the elevation grid, slope and
// aspect, then a Lambertian shade for a directional sun.
package shade

import (
	"math"

	"github.com/reliefmap/relief/internal/dem"
)

// Meters per degree on the WGS84 ellipsoid, good enough for shading.
const (
	metersPerDegLat = 110540.0
	metersPerDegLon = 111320.0 // at the equator, scaled by cos(lat)
)

// Params describes the simulated light source.
type Params struct {
	// AzimuthDeg is the sun direction in degrees clockwise from
	// north (315 = northwest).
	AzimuthDeg float64

	// AltitudeDeg is the sun angle above the horizon in degrees.
	AltitudeDeg float64

	// ZFactor scales elevations before the gradient. Zero means 1.
	ZFactor float64
}

// DefaultParams is the conventional northwest light at 45 degrees.
var DefaultParams = Params{AzimuthDeg: 315, AltitudeDeg: 45}

// Hillshade returns a grid of illumination values in [0, 1] with the
// same dimensions and transform as g. Cells that are NoData in g stay
// NoData; NoData neighbors borrow the center elevation so shading
// degrades instead of eroding the clipped edge.
func Hillshade(g *dem.Grid, p Params) *dem.Grid {
	zf := p.ZFactor
	if zf == 0 {
		zf = 1
	}

	// Cell sizes in meters at the grid's mean latitude.
	dx := g.Transform.CellWidth() * metersPerDegLon * math.Cos(g.MeanLat()*math.Pi/180)
	dy := g.Transform.CellHeight() * metersPerDegLat

	zenith := (90 - p.AltitudeDeg) * math.Pi / 180
	// Convert compass azimuth to the math convention used by the
	// aspect formula.
	azimuth := math.Mod(360-p.AzimuthDeg+90, 360) * math.Pi / 180

	out := g.Clone()
	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			center := g.Z(c, r)
			if center == g.NoData {
				out.SetZ(c, r, out.NoData)
				continue
			}

			// 3x3 neighborhood, clamped at edges, NoData replaced
			// by the center value.
			var w [3][3]float64
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					cc := clamp(c+i, 0, g.Ncols-1)
					rr := clamp(r+j, 0, g.Nrows-1)
					z := g.Z(cc, rr)
					if z == g.NoData {
						z = center
					}
					w[j+1][i+1] = z * zf
				}
			}

			dzdx := ((w[0][2] + 2*w[1][2] + w[2][2]) - (w[0][0] + 2*w[1][0] + w[2][0])) / (8 * dx)
			dzdy := ((w[2][0] + 2*w[2][1] + w[2][2]) - (w[0][0] + 2*w[0][1] + w[0][2])) / (8 * dy)

			slope := math.Atan(math.Hypot(dzdx, dzdy))
			aspect := math.Atan2(dzdy, -dzdx)

			v := math.Cos(zenith)*math.Cos(slope) +
				math.Sin(zenith)*math.Sin(slope)*math.Cos(azimuth-aspect)
			out.SetZ(c, r, clampFloat(v, 0, 1))
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
