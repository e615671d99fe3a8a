package dem

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// srtmVoid is the void sentinel in SRTM .hgt tiles.
const srtmVoid = -32768

// Tile resolutions in posts per edge.
const (
	SRTM1Resolution = 3601 // 1 arc-second
	SRTM3Resolution = 1201 // 3 arc-second
)

// ErrNoTile indicates a coordinate fell on a tile that is not present
// in the tile directory. TileSet treats this as NoData, not a failure;
// the error is only returned by loadTile internals.
var ErrNoTile = errors.New("dem: tile not found")

// TileSet samples elevations from a directory of raw SRTM .hgt tiles,
// one tile per 1°x1° cell, named like N37W123.hgt. Tiles are parsed on
// first touch and held for the rest of the run.
type TileSet struct {
	dir        string
	resolution int
	filename   func(latDeg, lonDeg int) string

	tiles map[string][]int16 // nil entry: tile known missing
}

// TileSetOption configures a TileSet.
type TileSetOption func(*TileSet)

// WithResolution sets the posts-per-edge count of the tiles. The
// default is SRTM3Resolution.
func WithResolution(n int) TileSetOption {
	return func(ts *TileSet) { ts.resolution = n }
}

// WithFilenameFunc overrides how tile filenames are derived from the
// tile's southwest corner.
func WithFilenameFunc(f func(latDeg, lonDeg int) string) TileSetOption {
	return func(ts *TileSet) { ts.filename = f }
}

// NewTileSet opens an SRTM tile directory.
func NewTileSet(dir string, opts ...TileSetOption) (*TileSet, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("dem: opening tile directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dem: not a directory: %s", dir)
	}

	ts := &TileSet{
		dir:        dir,
		resolution: SRTM3Resolution,
		filename:   TileFilename,
		tiles:      make(map[string][]int16),
	}
	for _, opt := range opts {
		opt(ts)
	}
	return ts, nil
}

// TileFilename returns the standard SRTM tile name for the tile whose
// southwest corner is (latDeg, lonDeg), e.g. N37W123.hgt.
func TileFilename(latDeg, lonDeg int) string {
	ns, ew := byte('N'), byte('E')
	if latDeg < 0 {
		ns, latDeg = 'S', -latDeg
	}
	if lonDeg < 0 {
		ew, lonDeg = 'W', -lonDeg
	}
	return fmt.Sprintf("%c%02d%c%03d.hgt", ns, latDeg, ew, lonDeg)
}

// Elevations implements Sampler. Coordinates on missing tiles or void
// posts yield DefaultNoData.
func (ts *TileSet) Elevations(ctx context.Context, coords [][2]float64) ([]float64, error) {
	out := make([]float64, len(coords))
	for i, c := range coords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = ts.at(c[0], c[1])
	}
	return out, nil
}

func (ts *TileSet) at(lon, lat float64) float64 {
	latDeg := int(math.Floor(lat))
	lonDeg := int(math.Floor(lon))
	tile := ts.tile(latDeg, lonDeg)
	if tile == nil {
		return DefaultNoData
	}

	n := ts.resolution
	// Post spacing is 1/(n-1) degrees; row 0 is the northern edge.
	fc := (lon - float64(lonDeg)) * float64(n-1)
	fr := (float64(latDeg+1) - lat) * float64(n-1)
	c0 := clampInt(int(math.Floor(fc)), 0, n-2)
	r0 := clampInt(int(math.Floor(fr)), 0, n-2)
	dx := fc - float64(c0)
	dy := fr - float64(r0)

	z00 := tile[r0*n+c0]
	z10 := tile[r0*n+c0+1]
	z01 := tile[(r0+1)*n+c0]
	z11 := tile[(r0+1)*n+c0+1]
	if z00 == srtmVoid || z10 == srtmVoid || z01 == srtmVoid || z11 == srtmVoid {
		return DefaultNoData
	}

	top := float64(z00)*(1-dx) + float64(z10)*dx
	bot := float64(z01)*(1-dx) + float64(z11)*dx
	return top*(1-dy) + bot*dy
}

func (ts *TileSet) tile(latDeg, lonDeg int) []int16 {
	name := ts.filename(latDeg, lonDeg)
	if t, ok := ts.tiles[name]; ok {
		return t
	}
	t, err := ts.loadTile(name)
	if err != nil {
		ts.tiles[name] = nil
		return nil
	}
	ts.tiles[name] = t
	return t
}

func (ts *TileSet) loadTile(name string) ([]int16, error) {
	data, err := os.ReadFile(filepath.Join(ts.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoTile
		}
		return nil, err
	}

	n := ts.resolution
	want := n * n * 2
	if len(data) != want {
		return nil, fmt.Errorf("dem: tile %s is %d bytes, want %d", name, len(data), want)
	}

	// Samples are 16-bit big-endian meters.
	tile := make([]int16, n*n)
	for i := range tile {
		tile[i] = int16(binary.BigEndian.Uint16(data[2*i:]))
	}
	return tile, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
