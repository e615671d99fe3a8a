package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/reliefmap/relief/internal/geo"
)

// BoundaryInfo is the payload printed by the info command.
type BoundaryInfo struct {
	Name     string     `json:"name,omitempty"`
	Rings    int        `json:"rings"`
	Vertices int        `json:"vertices"`
	BBox     [4]float64 `json:"bbox"` // minLon, minLat, maxLon, maxLat
	GridCols int        `json:"grid_cols"`
	GridRows int        `json:"grid_rows"`
	Step     float64    `json:"step"`
}

// InfoOptions holds flags for the info command.
type InfoOptions struct {
	*RootOptions
	Step float64
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InfoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "info <boundary.geojson>",
		Short: "Inspect a boundary file",
		Long: `Print the boundary's name, ring and vertex counts, bounding box,
and the grid dimensions the given step would produce.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(opts, cmd, args[0])
		},
	}

	cmd.Flags().Float64Var(&opts.Step, "step", 0.01, "grid step in degrees")
	return cmd
}

func runInfo(opts *InfoOptions, cmd *cobra.Command, path string) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	b, err := geo.LoadBoundary(path)
	if err != nil {
		_ = formatter.Error(err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load boundary", err)
	}

	bound := b.Bound()
	info := BoundaryInfo{
		Name:     b.Name,
		Rings:    b.Rings(),
		Vertices: b.Vertices(),
		BBox:     [4]float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()},
		Step:     opts.Step,
	}
	if opts.Step > 0 {
		info.GridCols = int(math.Ceil((bound.Max.Lon() - bound.Min.Lon()) / opts.Step))
		info.GridRows = int(math.Ceil((bound.Max.Lat() - bound.Min.Lat()) / opts.Step))
	}

	if opts.Format == "json" {
		return formatter.Success(info)
	}

	out := cmd.OutOrStdout()
	if info.Name != "" {
		fmt.Fprintf(out, "Name:     %s\n", info.Name)
	}
	fmt.Fprintf(out, "Rings:    %d\n", info.Rings)
	fmt.Fprintf(out, "Vertices: %d\n", info.Vertices)
	fmt.Fprintf(out, "BBox:     [%g, %g, %g, %g]\n", info.BBox[0], info.BBox[1], info.BBox[2], info.BBox[3])
	fmt.Fprintf(out, "Grid:     %dx%d at step %g\n", info.GridCols, info.GridRows, info.Step)
	return nil
}
