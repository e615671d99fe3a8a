package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reliefmap/relief/internal/dem"
)

// WriteHGTTile writes a raw SRTM-style .hgt tile into dir for the
// 1x1 degree cell at (latDeg, lonDeg), with resolution posts per edge.
// Post values come from elev(row, col) where row 0 is the northern
// edge. Returns the tile path.
func WriteHGTTile(t *testing.T, dir string, latDeg, lonDeg, resolution int, elev func(r, c int) int16) string {
	t.Helper()
	data := make([]byte, resolution*resolution*2)
	for r := 0; r < resolution; r++ {
		for c := 0; c < resolution; c++ {
			binary.BigEndian.PutUint16(data[2*(r*resolution+c):], uint16(elev(r, c)))
		}
	}
	path := filepath.Join(dir, dem.TileFilename(latDeg, lonDeg))
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// ConstElev returns an elevation function for WriteHGTTile that yields
// the same value at every post.
func ConstElev(v int16) func(r, c int) int16 {
	return func(r, c int) int16 { return v }
}
