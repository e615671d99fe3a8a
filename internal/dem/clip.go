package dem

import "github.com/reliefmap/relief/internal/geo"

// Clip returns a copy of g with every cell whose center falls outside
// the boundary set to NoData. Dimensions and transform are untouched.
func Clip(g *Grid, b *geo.Boundary) *Grid {
	out := g.Clone()
	for r := 0; r < out.Nrows; r++ {
		for c := 0; c < out.Ncols; c++ {
			lon, lat := out.CellCenter(c, r)
			if !b.Contains(lon, lat) {
				out.SetZ(c, r, out.NoData)
			}
		}
	}
	return out
}
