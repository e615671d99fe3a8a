package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// SampleOptions holds flags for the sample command.
type SampleOptions struct {
	*RootOptions
	sceneFlags
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SampleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sample [boundary.geojson]",
		Short: "Sample the elevation rasters without rendering",
		Long: `Run only the raster stages: load the boundary, sample an elevation
grid over its bounding box, clip to the polygon, and write both ESRI
ASCII grid rasters to the output directory.

Example:
  relief sample --dem ./srtm --step 0.01 alps.geojson`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(opts, cmd, args)
		},
	}

	addSceneFlags(cmd, &opts.sceneFlags)
	return cmd
}

func runSample(opts *SampleOptions, cmd *cobra.Command, args []string) error {
	configureLogging(opts.Verbose)

	sc, b, err := resolveScene(&opts.sceneFlags, cmd, args)
	if err != nil {
		return err
	}

	slog.Info("sample starting", "region", sc.Region, "boundary", sc.Boundary)
	unclipped, _, paths, err := sampleAndClip(cmd.Context(), sc, b)
	if err != nil {
		return WrapExitError(ExitFailure, "sampling failed", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sampled %s: %dx%d grid, rasters %v\n",
		sc.Region, unclipped.Ncols, unclipped.Nrows, paths)
	return nil
}
