package render

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"

	"github.com/reliefmap/relief/internal/dem"
)

// Fixed oblique camera for the 3D surface. The plots are static, so
// the view is not configurable.
const (
	surfaceYawDeg   = 335 // rotation of the grid in the ground plane
	surfacePitchDeg = 58  // tilt away from top-down
	surfaceWidth    = 1000
	surfaceHeight   = 760
)

type quad struct {
	xs, ys [4]float64
	depth  float64
	col    color.NRGBA
}

// WriteSurface3D renders the elevation surface as an oblique
// projection: one flat-shaded quad per grid cell, painted back to
// front, colored by the shared ramp times the hillshade. NoData cells
// leave holes.
func WriteSurface3D(path string, elev, hs *dem.Grid, pal *Palette, title string) error {
	min, max, ok := elev.MinMax()
	if !ok {
		return ErrEmptyGrid
	}
	span := max - min

	// Vertical exaggeration: the relief occupies about a third of the
	// grid's shorter ground dimension.
	heightScale := 0.35 * float64(minInt(elev.Ncols, elev.Nrows))

	yaw := surfaceYawDeg * math.Pi / 180
	pitch := surfacePitchDeg * math.Pi / 180
	sinYaw, cosYaw := math.Sin(yaw), math.Cos(yaw)
	sinPitch, cosPitch := math.Sin(pitch), math.Cos(pitch)

	project := func(c, r, z float64) (sx, sy, depth float64) {
		xr := c*cosYaw - r*sinYaw
		yr := c*sinYaw + r*cosYaw
		return xr, yr*cosPitch - z*sinPitch, yr
	}

	normalized := func(c, r int) (float64, bool) {
		z := elev.Z(c, r)
		if z == elev.NoData {
			return 0, false
		}
		if span == 0 {
			return 0, true
		}
		return (z - min) / span, true
	}

	quads := make([]quad, 0, (elev.Ncols-1)*(elev.Nrows-1))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for r := 0; r < elev.Nrows-1; r++ {
		for c := 0; c < elev.Ncols-1; c++ {
			var ts [4]float64
			ok := true
			corners := [4][2]int{{c, r}, {c + 1, r}, {c + 1, r + 1}, {c, r + 1}}
			for i, cr := range corners {
				t, valid := normalized(cr[0], cr[1])
				if !valid {
					ok = false
					break
				}
				ts[i] = t
			}
			if !ok {
				continue
			}

			q := quad{}
			meanT := 0.0
			for i, cr := range corners {
				sx, sy, depth := project(float64(cr[0]), float64(cr[1]), ts[i]*heightScale)
				q.xs[i], q.ys[i] = sx, sy
				q.depth += depth / 4
				meanT += ts[i] / 4

				minX, maxX = math.Min(minX, sx), math.Max(maxX, sx)
				minY, maxY = math.Min(minY, sy), math.Max(maxY, sy)
			}

			col := pal.At(meanT)
			light := hs.Z(c, r)
			if light == hs.NoData {
				light = 1
			}
			light = 0.25 + 0.75*light
			q.col = color.NRGBA{
				R: uint8(float64(col.R) * light),
				G: uint8(float64(col.G) * light),
				B: uint8(float64(col.B) * light),
				A: 255,
			}
			quads = append(quads, q)
		}
	}
	if len(quads) == 0 {
		return ErrEmptyGrid
	}

	// Painter's algorithm: farthest quads first.
	sort.Slice(quads, func(i, j int) bool { return quads[i].depth < quads[j].depth })

	// Fit the projected extent into the canvas.
	innerW := float64(surfaceWidth - 2*sideMargin)
	innerH := float64(surfaceHeight - titleMargin - sideMargin)
	scale := math.Min(innerW/(maxX-minX), innerH/(maxY-minY))
	offX := sideMargin + (innerW-(maxX-minX)*scale)/2 - minX*scale
	offY := titleMargin + (innerH-(maxY-minY)*scale)/2 - minY*scale

	dc := gg.NewContext(surfaceWidth, surfaceHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, q := range quads {
		dc.MoveTo(q.xs[0]*scale+offX, q.ys[0]*scale+offY)
		for i := 1; i < 4; i++ {
			dc.LineTo(q.xs[i]*scale+offX, q.ys[i]*scale+offY)
		}
		dc.ClosePath()
		dc.SetColor(q.col)
		// Stroke with the fill color to close hairline seams between
		// neighboring quads.
		dc.SetLineWidth(1)
		dc.FillPreserve()
		dc.Stroke()
	}

	if err := drawTitle(dc, title); err != nil {
		return err
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: writing %s: %w", path, err)
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
