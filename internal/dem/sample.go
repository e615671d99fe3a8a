package dem

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
)

// Sampler answers elevation lookups for a batch of coordinates.
// Coordinates are [lon, lat] pairs; the result slice is parallel to
// the input. A coordinate with no data yields DefaultNoData, not an
// error.
type Sampler interface {
	Elevations(ctx context.Context, coords [][2]float64) ([]float64, error)
}

// SampleGrid builds the unclipped elevation raster: a grid over bound
// at the given step, with every cell center sampled through s.
func SampleGrid(ctx context.Context, s Sampler, bound orb.Bound, step float64) (*Grid, error) {
	g := NewGrid(bound, step)

	coords := make([][2]float64, 0, g.Ncols*g.Nrows)
	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			lon, lat := g.CellCenter(c, r)
			coords = append(coords, [2]float64{lon, lat})
		}
	}

	elevs, err := s.Elevations(ctx, coords)
	if err != nil {
		return nil, fmt.Errorf("dem: sampling grid: %w", err)
	}
	if len(elevs) != len(coords) {
		return nil, fmt.Errorf("dem: sampler returned %d elevations for %d coordinates", len(elevs), len(coords))
	}

	copy(g.Data, elevs)
	return g, nil
}
