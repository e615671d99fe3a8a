package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/reliefmap/relief/internal/render"
	"github.com/reliefmap/relief/internal/runlog"
	"github.com/reliefmap/relief/internal/shade"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	sceneFlags
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render [boundary.geojson]",
		Short: "Render the 2D relief map and 3D surface for a region",
		Long: `Run the full pipeline: load the boundary, sample an elevation grid
over its bounding box, clip to the polygon, compute the hillshade, and
render both plots.

Artifacts written to the output directory:
  <region>_dem.asc          unclipped elevation raster
  <region>_dem_clipped.asc  polygon-clipped elevation raster
  <region>_relief.png       2D shaded-relief map
  <region>_surface.png      3D elevation surface
  <region>_run.json         run manifest

Example:
  relief render --dem ./srtm --step 0.005 alps.geojson
  relief render --scene scenes/sao-paulo.cue`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd, args)
		},
	}

	addSceneFlags(cmd, &opts.sceneFlags)
	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command, args []string) error {
	configureLogging(opts.Verbose)

	sc, b, err := resolveScene(&opts.sceneFlags, cmd, args)
	if err != nil {
		return err
	}

	manifest := runlog.New(sc.Region)
	manifest.GridStep = sc.GridStep
	manifest.SunAzimuth = sc.SunAzimuth
	manifest.SunAltitude = sc.SunAltitude
	manifest.Source = sc.Source

	slog.Info("render starting",
		"run_id", manifest.RunID, "region", sc.Region, "boundary", sc.Boundary)

	unclipped, clipped, rasterPaths, err := sampleAndClip(cmd.Context(), sc, b)
	if err != nil {
		return WrapExitError(ExitFailure, "sampling failed", err)
	}
	manifest.GridCols = unclipped.Ncols
	manifest.GridRows = unclipped.Nrows
	for _, p := range rasterPaths {
		manifest.AddArtifact(p)
	}

	slog.Info("computing hillshade",
		"azimuth", sc.SunAzimuth, "altitude", sc.SunAltitude)
	hs := shade.Hillshade(clipped, shade.Params{
		AzimuthDeg:  sc.SunAzimuth,
		AltitudeDeg: sc.SunAltitude,
	})

	pal := render.TerrainPalette()
	if sc.Palette != "" {
		pal, err = render.LoadPalette(sc.Palette)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load palette", err)
		}
	}

	stem := sc.Slugged()
	reliefPath := filepath.Join(sc.OutDir, stem+"_relief.png")
	surfacePath := filepath.Join(sc.OutDir, stem+"_surface.png")

	slog.Info("rendering relief map", "path", reliefPath)
	if err := render.WriteRelief2D(reliefPath, clipped, hs, b, pal, sc.Region); err != nil {
		return WrapExitError(ExitFailure, "relief render failed", err)
	}
	manifest.AddArtifact(reliefPath)

	slog.Info("rendering surface", "path", surfacePath)
	if err := render.WriteSurface3D(surfacePath, clipped, hs, pal, sc.Region); err != nil {
		return WrapExitError(ExitFailure, "surface render failed", err)
	}
	manifest.AddArtifact(surfacePath)

	manifest.Finish()
	if _, err := manifest.Write(sc.OutDir, stem); err != nil {
		return WrapExitError(ExitFailure, "failed to write run manifest", err)
	}

	slog.Info("render finished", "run_id", manifest.RunID, "took_ms", manifest.TookMS)
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s: %d artifacts in %s\n",
		sc.Region, len(manifest.Artifacts), sc.OutDir)
	return nil
}
