package dem

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Codec errors.
var (
	// ErrBadHeader indicates a malformed or incomplete ESRI ASCII
	// grid header.
	ErrBadHeader = errors.New("dem: bad ASCII grid header")
)

// WriteASCIIGrid writes the grid as an ESRI ASCII grid (.asc) file.
// A path ending in ".gz" is gzip-compressed.
func WriteASCIIGrid(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dem: writing %s: %w", path, err)
	}
	defer f.Close()

	var w io.Writer = f
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(f)
		w = gz
	}

	if err := encodeASCIIGrid(w, g); err != nil {
		return fmt.Errorf("dem: writing %s: %w", path, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("dem: writing %s: %w", path, err)
		}
	}
	return f.Close()
}

func encodeASCIIGrid(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	xll, yll := g.Transform.Apply(0, float64(g.Nrows))
	fmt.Fprintf(bw, "ncols %d\n", g.Ncols)
	fmt.Fprintf(bw, "nrows %d\n", g.Nrows)
	fmt.Fprintf(bw, "xllcorner %g\n", xll)
	fmt.Fprintf(bw, "yllcorner %g\n", yll)
	fmt.Fprintf(bw, "cellsize %g\n", g.Transform.CellWidth())
	fmt.Fprintf(bw, "NODATA_value %g\n", g.NoData)

	for r := 0; r < g.Nrows; r++ {
		for c := 0; c < g.Ncols; c++ {
			if c > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(g.Z(c, r), 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadASCIIGrid reads an ESRI ASCII grid from disk. A path ending in
// ".gz" is decompressed first.
func ReadASCIIGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dem: reading %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("dem: reading %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	g, err := decodeASCIIGrid(r)
	if err != nil {
		return nil, fmt.Errorf("dem: reading %s: %w", path, err)
	}
	return g, nil
}

func decodeASCIIGrid(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	header := map[string]float64{}
	var rows [][]float64
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 2 && !isNumeric(fields[0]) {
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrBadHeader, sc.Text())
			}
			header[strings.ToLower(fields[0])] = v
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("dem: bad cell value %q", f)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for _, k := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := header[k]; !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrBadHeader, k)
		}
	}
	ncols, nrows := int(header["ncols"]), int(header["nrows"])
	if len(rows) != nrows {
		return nil, fmt.Errorf("%w: %d data rows, header says %d", ErrBadHeader, len(rows), nrows)
	}

	nodata := DefaultNoData
	if v, ok := header["nodata_value"]; ok {
		nodata = v
	}
	step := header["cellsize"]
	g := &Grid{
		Ncols:  ncols,
		Nrows:  nrows,
		NoData: nodata,
		Transform: Transform{
			header["xllcorner"], step, 0,
			header["yllcorner"] + float64(nrows)*step, 0, -step,
		},
		Data: make([]float64, ncols*nrows),
	}
	for r, row := range rows {
		if len(row) != ncols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadHeader, r, len(row), ncols)
		}
		copy(g.Data[r*ncols:(r+1)*ncols], row)
	}
	return g, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
