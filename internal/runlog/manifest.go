// Package runlog records what a run produced: a small JSON manifest
// with a unique run ID, the parameters, the artifact paths, and
// timings. The manifest is informational; nothing reads it back.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest describes one completed render run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	Region    string    `json:"region"`
	StartedAt time.Time `json:"started_at"`

	GridStep    float64 `json:"grid_step"`
	SunAzimuth  float64 `json:"sun_azimuth"`
	SunAltitude float64 `json:"sun_altitude"`
	Source      string  `json:"source"`

	GridCols int `json:"grid_cols"`
	GridRows int `json:"grid_rows"`

	Artifacts []string `json:"artifacts"`

	TookMS int64 `json:"took_ms"`
}

// New starts a manifest for a region. Run IDs are UUIDv7 so they sort
// by time; if the clock-based generator fails, a random UUID will do.
func New(region string) *Manifest {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return &Manifest{
		RunID:     id.String(),
		Region:    region,
		StartedAt: time.Now().UTC(),
	}
}

// AddArtifact appends a produced file path.
func (m *Manifest) AddArtifact(path string) {
	m.Artifacts = append(m.Artifacts, path)
}

// Finish stamps the elapsed time.
func (m *Manifest) Finish() {
	m.TookMS = time.Since(m.StartedAt).Milliseconds()
}

// Write stores the manifest as <stem>_run.json in dir and returns the
// path.
func (m *Manifest) Write(dir, stem string) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("runlog: encoding manifest: %w", err)
	}
	path := filepath.Join(dir, stem+"_run.json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("runlog: writing manifest: %w", err)
	}
	return path, nil
}
