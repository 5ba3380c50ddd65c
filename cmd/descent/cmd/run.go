package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/born-ml/descent/internal/config"
	"github.com/born-ml/descent/internal/metrics"
	"github.com/born-ml/descent/internal/objective"
	"github.com/born-ml/descent/internal/parallel"
	"github.com/born-ml/descent/internal/playground"
	"github.com/born-ml/descent/internal/vec"
)

// runReport is the json/yaml document written by run.
type runReport struct {
	Objective string            `json:"objective" yaml:"objective"`
	Formula   string            `json:"formula" yaml:"formula"`
	Start     vec.Vector        `json:"start" yaml:"start"`
	Paths     []playground.Path `json:"paths" yaml:"paths"`
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run optimizers side by side on a benchmark objective",
		Example: `  descent run --objective rosenbrock --iterations 500
  descent run --optimizers adam,nesterov --lr 0.05 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			showMetrics, err := cmd.Flags().GetBool("metrics")
			if err != nil {
				return err
			}
			return run(cmd, cfg, showMetrics)
		},
	}

	f := cmd.Flags()
	f.String("objective", objective.Default().Name, "Objective function name (see 'descent list')")
	f.StringSlice("start", nil, "Starting point x,y (default: the objective's own)")
	f.StringSlice("optimizers", nil, "Optimizers to run (default: all)")
	f.Float64("lr", 0.01, "Learning rate")
	f.Float64("momentum", 0.9, "Momentum term (momentum, nesterov)")
	f.Float64("smoothing", 0.9, "Smoothing term (adadelta)")
	f.Float64("beta1", 0.9, "First moment decay (adam)")
	f.Float64("beta2", 0.999, "Second moment decay (adam)")
	f.Int("iterations", 100, "Points per trajectory, including the start")
	f.Float64("gradient-step", 1e-4, "Finite-difference step size")
	f.Int("workers", 0, "Concurrent trajectories (0: one per CPU)")
	f.StringP("output", "o", "table", "Output format (table, json, yaml)")
	f.Bool("metrics", false, "Print prometheus metrics for the run to stderr")

	return cmd
}

func run(cmd *cobra.Command, cfg *config.Config, showMetrics bool) error {
	fn, err := objective.Lookup(cfg.Run.Objective)
	if err != nil {
		return err
	}
	kinds, err := cfg.Run.Kinds()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	runner := playground.NewRunner(
		playground.WithMetrics(metrics.New(reg)),
		playground.WithParallel(parallelConfig(cfg.Run)),
	)

	settings := playground.Settings{
		Start:           vec.Vector(cfg.Run.Start),
		Kinds:           kinds,
		Hyperparameters: cfg.Run.Hyperparameters(),
		Iterations:      cfg.Run.Iterations,
		GradientStep:    cfg.Run.GradientStep,
	}
	paths, err := runner.Run(cmd.Context(), fn, settings)
	if err != nil {
		return err
	}

	start := settings.Start
	if len(start) == 0 {
		start = fn.Start
	}
	report := runReport{
		Objective: fn.Name,
		Formula:   fn.Formula,
		Start:     start,
		Paths:     paths,
	}

	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "table":
		err = writeRunTable(out, report)
	default:
		err = encode(out, cfg.Output.Format, report)
	}
	if err != nil {
		return err
	}

	if showMetrics {
		return writeMetrics(cmd.ErrOrStderr(), reg)
	}
	return nil
}

// parallelConfig applies the configured worker limit to the default fan-out.
func parallelConfig(r config.RunConfig) parallel.Config {
	pcfg := parallel.DefaultConfig()
	if r.Workers > 0 {
		pcfg.NumWorkers = r.Workers
	}
	return pcfg
}

func writeRunTable(out io.Writer, r runReport) error {
	fmt.Fprintf(out, "%s: %s\n", r.Objective, r.Formula)
	fmt.Fprintf(out, "start: (%g, %g)\n\n", r.Start[0], r.Start[1])

	w := tabwriter.NewWriter(out, 1, 1, 2, ' ', 0)
	fmt.Fprintln(w, "OPTIMIZER\tSTEPS\tX\tY\tF(X,Y)\tFINITE")
	for _, p := range r.Paths {
		fmt.Fprintf(w, "%s\t%d\t%.6g\t%.6g\t%.6g\t%t\n",
			p.Kind, len(p.Points)-1, p.Final[0], p.Final[1], p.Value, p.Finite)
	}
	return w.Flush()
}

func writeMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return err
		}
	}
	return nil
}
