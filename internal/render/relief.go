package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"

	"github.com/reliefmap/relief/internal/dem"
	"github.com/reliefmap/relief/internal/geo"
)

// ErrEmptyGrid indicates a grid with no valid elevation sample, which
// cannot be normalized onto the color ramp.
var ErrEmptyGrid = errors.New("render: grid has no valid elevation samples")

// Layout constants shared by both plots.
const (
	targetMapWidth = 900 // pixels, before margins
	titleMargin    = 52
	legendMargin   = 72
	sideMargin     = 24
	legendBarWidth = 320
	legendBarHt    = 14
)

// WriteRelief2D renders the 2D shaded-relief map: elevation through
// the color ramp, multiplied by the hillshade, with the boundary
// outline, a title, and an elevation legend. elev and hs must share
// dimensions and transform; NoData cells render transparent.
func WriteRelief2D(path string, elev, hs *dem.Grid, b *geo.Boundary, pal *Palette, title string) error {
	min, max, ok := elev.MinMax()
	if !ok {
		return ErrEmptyGrid
	}

	img := shadedImage(elev, hs, pal, min, max)

	scale := float64(targetMapWidth) / float64(elev.Ncols)
	if scale < 1 {
		scale = 1
	}
	mapW := int(float64(elev.Ncols) * scale)
	mapH := int(float64(elev.Nrows) * scale)

	dc := gg.NewContext(mapW+2*sideMargin, mapH+titleMargin+legendMargin)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.Push()
	dc.Translate(sideMargin, titleMargin)
	dc.Scale(scale, scale)
	dc.DrawImage(img, 0, 0)
	dc.Pop()

	strokeBoundary(dc, b, elev, scale, sideMargin, titleMargin)

	if err := drawTitle(dc, title); err != nil {
		return err
	}
	if err := drawLegend(dc, pal, min, max, mapH+titleMargin); err != nil {
		return err
	}

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: writing %s: %w", path, err)
	}
	return nil
}

// shadedImage builds the per-cell image: ramp color scaled by the
// hillshade value, NoData transparent.
func shadedImage(elev, hs *dem.Grid, pal *Palette, min, max float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, elev.Ncols, elev.Nrows))
	span := max - min
	for r := 0; r < elev.Nrows; r++ {
		for c := 0; c < elev.Ncols; c++ {
			z := elev.Z(c, r)
			if z == elev.NoData {
				continue // zero value: transparent
			}
			t := 0.5
			if span > 0 {
				t = (z - min) / span
			}
			col := pal.At(t)

			light := hs.Z(c, r)
			if light == hs.NoData {
				light = 1
			}
			// Keep a floor so shadowed terrain stays readable.
			light = 0.25 + 0.75*light

			img.SetNRGBA(c, r, color.NRGBA{
				R: uint8(float64(col.R) * light),
				G: uint8(float64(col.G) * light),
				B: uint8(float64(col.B) * light),
				A: 255,
			})
		}
	}
	return img
}

// strokeBoundary draws the region outline on top of the shaded map.
func strokeBoundary(dc *gg.Context, b *geo.Boundary, g *dem.Grid, scale, offX, offY float64) {
	var polys []orb.Polygon
	switch geom := b.Geometry.(type) {
	case orb.Polygon:
		polys = []orb.Polygon{geom}
	case orb.MultiPolygon:
		polys = geom
	}

	dc.SetRGBA(0.1, 0.1, 0.1, 0.9)
	dc.SetLineWidth(1.5)
	for _, poly := range polys {
		for _, ring := range poly {
			for i, pt := range ring {
				fc, fr := g.Transform.Invert(pt.Lon(), pt.Lat())
				x := offX + fc*scale
				y := offY + fr*scale
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
		}
	}
	dc.Stroke()
}

func drawTitle(dc *gg.Context, title string) error {
	if title == "" {
		return nil
	}
	face, err := fontFace(22)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(title, float64(dc.Width())/2, titleMargin/2, 0.5, 0.5)
	return nil
}

// drawLegend renders the ramp bar with min/max elevation labels.
func drawLegend(dc *gg.Context, pal *Palette, min, max float64, top int) error {
	face, err := fontFace(13)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	x0 := float64(dc.Width()-legendBarWidth) / 2
	y0 := float64(top) + 28
	for i := 0; i < legendBarWidth; i++ {
		col := pal.At(float64(i) / float64(legendBarWidth-1))
		dc.SetColor(col)
		dc.DrawRectangle(x0+float64(i), y0, 1, legendBarHt)
		dc.Fill()
	}

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.SetLineWidth(1)
	dc.DrawRectangle(x0, y0, legendBarWidth, legendBarHt)
	dc.Stroke()

	dc.DrawStringAnchored(fmt.Sprintf("%.0f m", min), x0, y0+legendBarHt+12, 0, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("%.0f m", max), x0+legendBarWidth, y0+legendBarHt+12, 1, 0.5)
	return nil
}
