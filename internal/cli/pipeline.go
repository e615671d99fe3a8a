package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reliefmap/relief/internal/dem"
	"github.com/reliefmap/relief/internal/geo"
	"github.com/reliefmap/relief/internal/scene"
)

// sceneFlags mirrors the scene file fields as command-line flags.
// A --scene file provides the base configuration; any flag the user
// set explicitly overrides the file.
type sceneFlags struct {
	Scene    string
	Out      string
	Step     float64
	Azimuth  float64
	Altitude float64
	DEMDir   string
	Palette  string
}

func addSceneFlags(cmd *cobra.Command, f *sceneFlags) {
	def := scene.Default()
	cmd.Flags().StringVar(&f.Scene, "scene", "", "CUE scene file (flags override its fields)")
	cmd.Flags().StringVar(&f.Out, "out", def.OutDir, "output directory")
	cmd.Flags().Float64Var(&f.Step, "step", def.GridStep, "grid step in degrees")
	cmd.Flags().Float64Var(&f.Azimuth, "azimuth", def.SunAzimuth, "sun azimuth in degrees clockwise from north")
	cmd.Flags().Float64Var(&f.Altitude, "altitude", def.SunAltitude, "sun altitude in degrees above the horizon")
	cmd.Flags().StringVar(&f.DEMDir, "dem", "", "local SRTM tile directory (remote service when unset)")
	cmd.Flags().StringVar(&f.Palette, "palette", "", "YAML color ramp file (built-in terrain ramp when unset)")
}

// configureLogging sets up the process-wide slog handler the same way
// for every command.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// resolveScene builds the effective scene from flags (and optionally a
// scene file), loads the boundary, and validates the result. The
// boundary argument, when present, overrides the scene's boundary.
func resolveScene(f *sceneFlags, cmd *cobra.Command, args []string) (*scene.Scene, *geo.Boundary, error) {
	var sc *scene.Scene
	if f.Scene != "" {
		compiled, err := scene.CompileFile(f.Scene)
		if err != nil {
			return nil, nil, WrapExitError(ExitCommandError, "failed to compile scene", err)
		}
		sc = compiled
	} else {
		def := scene.Default()
		sc = &def
	}

	// Flags the user touched win over the scene file.
	flags := cmd.Flags()
	if flags.Changed("out") || f.Scene == "" {
		sc.OutDir = f.Out
	}
	if flags.Changed("step") || f.Scene == "" {
		sc.GridStep = f.Step
	}
	if flags.Changed("azimuth") || f.Scene == "" {
		sc.SunAzimuth = f.Azimuth
	}
	if flags.Changed("altitude") || f.Scene == "" {
		sc.SunAltitude = f.Altitude
	}
	if flags.Changed("palette") {
		sc.Palette = f.Palette
	}
	if flags.Changed("dem") {
		sc.Source = scene.SourceSRTM
		sc.DEMDir = f.DEMDir
	}

	if len(args) == 1 {
		sc.Boundary = args[0]
	}
	if sc.Boundary == "" {
		return nil, nil, NewExitError(ExitCommandError, "boundary file required (argument or scene field)")
	}

	b, err := geo.LoadBoundary(sc.Boundary)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load boundary", err)
	}

	if sc.Region == "" {
		sc.Region = b.Name
	}
	if sc.Region == "" {
		base := filepath.Base(sc.Boundary)
		sc.Region = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if verrs := sc.Validate(); len(verrs) > 0 {
		return nil, nil, WrapExitError(ExitCommandError, "invalid configuration", verrs[0])
	}
	return sc, b, nil
}

// buildSampler constructs the configured elevation source. The
// returned closer releases the remote client; for tiles it is a no-op.
func buildSampler(sc *scene.Scene) (dem.Sampler, func() error, error) {
	switch sc.Source {
	case scene.SourceSRTM:
		ts, err := dem.NewTileSet(sc.DEMDir)
		if err != nil {
			return nil, nil, err
		}
		return ts, func() error { return nil }, nil
	case scene.SourceAPI:
		c := dem.NewAPIClient(sc.APIBaseURL)
		return c, c.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown elevation source %q", sc.Source)
}

// sampleAndClip runs stages 1-3 of the pipeline: grid sampling over
// the boundary's bounding box, then polygon clipping. Both rasters are
// written to the output directory and returned.
func sampleAndClip(ctx context.Context, sc *scene.Scene, b *geo.Boundary) (unclipped, clipped *dem.Grid, paths []string, err error) {
	sampler, closeSampler, err := buildSampler(sc)
	if err != nil {
		return nil, nil, nil, err
	}
	defer func() {
		if closeErr := closeSampler(); closeErr != nil {
			slog.Error("error closing sampler", "error", closeErr)
		}
	}()

	if err := os.MkdirAll(sc.OutDir, 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("creating output directory: %w", err)
	}

	start := time.Now()
	slog.Info("sampling elevation grid", "step", sc.GridStep, "source", sc.Source)
	unclipped, err = dem.SampleGrid(ctx, sampler, b.Bound(), sc.GridStep)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.Info("grid sampled",
		"cols", unclipped.Ncols, "rows", unclipped.Nrows,
		"took", time.Since(start))

	slog.Info("clipping to boundary")
	clipped = dem.Clip(unclipped, b)

	stem := sc.Slugged()
	rawPath := filepath.Join(sc.OutDir, stem+"_dem.asc")
	clipPath := filepath.Join(sc.OutDir, stem+"_dem_clipped.asc")
	if err := dem.WriteASCIIGrid(rawPath, unclipped); err != nil {
		return nil, nil, nil, err
	}
	if err := dem.WriteASCIIGrid(clipPath, clipped); err != nil {
		return nil, nil, nil, err
	}
	slog.Info("rasters written", "raw", rawPath, "clipped", clipPath)

	return unclipped, clipped, []string{rawPath, clipPath}, nil
}
