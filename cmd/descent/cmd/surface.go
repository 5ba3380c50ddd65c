package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/born-ml/descent/internal/objective"
	"github.com/born-ml/descent/internal/surface"
)

// surfaceReport is the json/yaml document written by surface.
type surfaceReport struct {
	Objective string          `json:"objective" yaml:"objective"`
	XRange    objective.Range `json:"x_range" yaml:"x_range"`
	YRange    objective.Range `json:"y_range" yaml:"y_range"`
	ZRange    objective.Range `json:"z_range" yaml:"z_range"`
	Mesh      *surface.Mesh   `json:"mesh" yaml:"mesh"`
}

func surfaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "Sample an objective on a regular grid over its plotting window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			fn, err := objective.Lookup(cfg.Run.Objective)
			if err != nil {
				return err
			}
			mesh, err := surface.Grid(fn.F, cfg.Output.Steps, fn.XRange, fn.YRange, parallelConfig(cfg.Run))
			if err != nil {
				return err
			}
			log.Debug().
				Str("objective", fn.Name).
				Int("samples", len(mesh.Z)*len(mesh.Z)).
				Msg("Surface sampled")

			if cfg.Output.Format != "table" {
				return encode(cmd.OutOrStdout(), cfg.Output.Format, surfaceReport{
					Objective: fn.Name,
					XRange:    fn.XRange,
					YRange:    fn.YRange,
					ZRange:    fn.ZRange,
					Mesh:      mesh,
				})
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 1, 2, ' ', 0)
			fmt.Fprintln(w, "X\tY\tZ")
			for j := range mesh.Z {
				for i := range mesh.Z[j] {
					fmt.Fprintf(w, "%.6g\t%.6g\t%.6g\n", mesh.X[j][i], mesh.Y[j][i], mesh.Z[j][i])
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("objective", objective.Default().Name, "Objective function name (see 'descent list')")
	cmd.Flags().Int("steps", 50, "Grid intervals per axis")
	cmd.Flags().Int("workers", 0, "Concurrent grid rows (0: one per CPU)")
	cmd.Flags().StringP("output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}
