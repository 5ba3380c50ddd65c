package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/born-ml/descent/internal/objective"
	"github.com/born-ml/descent/internal/optim"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in objective functions and optimizers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 1, 2, ' ', 0)
			fmt.Fprintln(w, "OBJECTIVE\tSTART\tX RANGE\tY RANGE\tFORMULA")
			for _, f := range objective.All() {
				fmt.Fprintf(w, "%s\t(%g, %g)\t[%g, %g]\t[%g, %g]\t%s\n",
					f.Name, f.Start[0], f.Start[1],
					f.XRange.Min, f.XRange.Max, f.YRange.Min, f.YRange.Max,
					f.Formula)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "OPTIMIZER\t\t\t\t")
			for _, k := range optim.Kinds() {
				fmt.Fprintf(w, "%s\t\t\t\t\n", k)
			}
			return w.Flush()
		},
	}
}
