// Package testutil provides deterministic fixtures for tests:
// synthetic elevation grids, a square boundary, and raw SRTM tiles
// written to temp directories.
package testutil

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/reliefmap/relief/internal/dem"
)

// FlatGrid returns an ncols x nrows grid over bound where every cell
// holds the same elevation.
func FlatGrid(bound orb.Bound, step, elev float64) *dem.Grid {
	g := dem.NewGrid(bound, step)
	for i := range g.Data {
		g.Data[i] = elev
	}
	return g
}

// RampGrid returns a grid whose elevation increases linearly from west
// to east, from 0 at the first column to rise at the last.
func RampGrid(bound orb.Bound, step, rise float64) *dem.Grid {
	g := dem.NewGrid(bound, step)
	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			g.SetZ(c, r, rise*float64(c)/float64(max(g.Ncols-1, 1)))
		}
	}
	return g
}

// ConeGrid returns a grid with a radially symmetric peak at the
// center, height peak at the apex falling linearly to 0 at the edges.
func ConeGrid(bound orb.Bound, step, peak float64) *dem.Grid {
	g := dem.NewGrid(bound, step)
	cx, cy := float64(g.Ncols-1)/2, float64(g.Nrows-1)/2
	maxd := math.Hypot(cx, cy)
	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			d := math.Hypot(float64(c)-cx, float64(r)-cy)
			g.SetZ(c, r, peak*math.Max(0, 1-d/maxd))
		}
	}
	return g
}
