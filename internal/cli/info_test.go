package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reliefmap/relief/internal/testutil"
)

func TestInfoText(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSquareBoundary(t, dir, "Cone Ridge", 7, 46, 0.5)

	buf := &bytes.Buffer{}
	cmd := NewInfoCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{path, "--step", "0.1"})

	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "Cone Ridge")
	assert.Contains(t, out, "Rings:    1")
	assert.Contains(t, out, "5x5")
}

func TestInfoJSON(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteSquareBoundary(t, dir, "Cone Ridge", 7, 46, 0.5)

	buf := &bytes.Buffer{}
	cmd := NewInfoCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{path, "--step", "0.25"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var info BoundaryInfo
	require.NoError(t, json.Unmarshal(payload, &info))
	assert.Equal(t, "Cone Ridge", info.Name)
	assert.Equal(t, 2, info.GridCols)
	assert.Equal(t, 2, info.GridRows)
	assert.Equal(t, [4]float64{7, 46, 7.5, 46.5}, info.BBox)
}

func TestInfoMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewInfoCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.geojson")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
