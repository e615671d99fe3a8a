package render

import (
	"fmt"
	"image/color"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Stop is one color stop of a hypsometric ramp. At is the normalized
// elevation in [0, 1]; Color is "#rrggbb".
type Stop struct {
	At    float64 `yaml:"at"`
	Color string  `yaml:"color"`
}

type paletteFile struct {
	Name  string `yaml:"name"`
	Stops []Stop `yaml:"stops"`
}

// Palette maps normalized elevation to color by linear interpolation
// between stops.
type Palette struct {
	Name  string
	stops []parsedStop
}

type parsedStop struct {
	at  float64
	col color.NRGBA
}

// TerrainPalette is the built-in ramp used when no palette file is
// given: green lowlands through brown slopes to white peaks.
func TerrainPalette() *Palette {
	p, err := buildPalette("terrain", []Stop{
		{At: 0.00, Color: "#2c7c41"},
		{At: 0.25, Color: "#8fbc58"},
		{At: 0.50, Color: "#d9c383"},
		{At: 0.75, Color: "#a6763f"},
		{At: 0.90, Color: "#8a8a8a"},
		{At: 1.00, Color: "#f5f5f5"},
	})
	if err != nil {
		panic(err) // static stops, cannot fail
	}
	return p
}

// LoadPalette reads a YAML palette file.
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: reading palette: %w", err)
	}
	p, err := ParsePalette(data)
	if err != nil {
		return nil, fmt.Errorf("render: %s: %w", path, err)
	}
	return p, nil
}

// ParsePalette parses YAML palette bytes.
func ParsePalette(data []byte) (*Palette, error) {
	var pf paletteFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}
	return buildPalette(pf.Name, pf.Stops)
}

func buildPalette(name string, stops []Stop) (*Palette, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("palette needs at least 2 stops, got %d", len(stops))
	}

	p := &Palette{Name: name, stops: make([]parsedStop, len(stops))}
	for i, s := range stops {
		if s.At < 0 || s.At > 1 {
			return nil, fmt.Errorf("stop %d: at=%g outside [0,1]", i, s.At)
		}
		col, err := parseHexColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		p.stops[i] = parsedStop{at: s.At, col: col}
	}
	sort.Slice(p.stops, func(i, j int) bool { return p.stops[i].at < p.stops[j].at })
	return p, nil
}

// At returns the ramp color for a normalized elevation. Values outside
// [0, 1] clamp to the end stops.
func (p *Palette) At(t float64) color.NRGBA {
	if t <= p.stops[0].at {
		return p.stops[0].col
	}
	last := p.stops[len(p.stops)-1]
	if t >= last.at {
		return last.col
	}
	for i := 1; i < len(p.stops); i++ {
		if t <= p.stops[i].at {
			a, b := p.stops[i-1], p.stops[i]
			f := (t - a.at) / (b.at - a.at)
			return lerpColor(a.col, b.col, f)
		}
	}
	return last.col
}

func lerpColor(a, b color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(a.R) + f*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + f*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + f*(float64(b.B)-float64(a.B))),
		A: 255,
	}
}

func parseHexColor(s string) (color.NRGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
