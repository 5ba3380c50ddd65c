// Package playground runs several optimizers side by side on one objective.
//
// A run builds a single finite-difference gradient for the objective, one
// optimizer per requested kind from a shared starting point, and samples
// every trajectory concurrently. Optimizers share nothing, so the only
// coordination is collecting results in kind order.
package playground

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/metrics"
	"github.com/born-ml/descent/internal/objective"
	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/parallel"
	"github.com/born-ml/descent/internal/surface"
	"github.com/born-ml/descent/internal/vec"
)

// Settings describe one comparison run.
type Settings struct {
	Start           vec.Vector   // Empty: the objective's own start
	Kinds           []optim.Kind // Empty: every kind
	Hyperparameters optim.Hyperparameters
	Iterations      int     // Points per trajectory, including the start
	GradientStep    float64 // Finite-difference step h
}

// Path is one optimizer's trajectory.
type Path struct {
	Kind   optim.Kind       `json:"optimizer" yaml:"optimizer"`
	Points []vec.Vector     `json:"points" yaml:"points"`
	Lifted []surface.Point3 `json:"lifted" yaml:"lifted"`
	Final  vec.Vector       `json:"final" yaml:"final"`
	Value  float64          `json:"value" yaml:"value"` // Objective at Final
	Finite bool             `json:"finite" yaml:"finite"`
}

// Runner executes comparison runs.
type Runner struct {
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	parallel parallel.Config
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger replaces the default component logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics enables prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithParallel sets the fan-out configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(r *Runner) { r.parallel = cfg }
}

// NewRunner creates a Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logger:   log.With().Str("component", "playground").Logger(),
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run samples every selected optimizer on fn and returns their paths in
// the order of s.Kinds.
func (r *Runner) Run(ctx context.Context, fn objective.Function, s Settings) ([]Path, error) {
	if fn.F == nil {
		return nil, errors.New("playground: objective has no function")
	}

	start := s.Start
	if len(start) == 0 {
		start = fn.Start
	}
	if err := vec.CheckDim(2, len(start)); err != nil {
		return nil, fmt.Errorf("playground: start: %w", err)
	}

	kinds := s.Kinds
	if len(kinds) == 0 {
		kinds = optim.Kinds()
	}

	g, err := fn.Gradient(s.GradientStep)
	if err != nil {
		return nil, fmt.Errorf("playground: %w", err)
	}

	logger := r.logger.With().Str("objective", fn.Name).Logger()
	logger.Info().
		Floats64("start", start).
		Int("iterations", s.Iterations).
		Int("optimizers", len(kinds)).
		Msg("Starting run")

	paths := make([]Path, len(kinds))
	err = parallel.Do(ctx, len(kinds), func(_ context.Context, i int) error {
		p, err := r.trajectory(fn, kinds[i], i, start, g, s, logger)
		if err != nil {
			return err
		}
		paths[i] = p
		return nil
	}, r.parallel)
	if err != nil {
		logger.Error().Err(err).Msg("Run failed")
		return nil, err
	}
	return paths, nil
}

// trajectory builds and samples one optimizer.
func (r *Runner) trajectory(
	fn objective.Function,
	kind optim.Kind,
	index int,
	start vec.Vector,
	g gradient.Func,
	s Settings,
	logger zerolog.Logger,
) (Path, error) {
	if r.metrics != nil {
		g = r.metrics.Instrument(string(kind), g)
	}

	o, err := optim.New(kind, start, g, s.Hyperparameters)
	if err != nil {
		return Path{}, err
	}

	began := time.Now()
	points, err := optim.Sample(o, s.Iterations)
	if err != nil {
		return Path{}, err
	}
	elapsed := time.Since(began)

	if r.metrics != nil {
		r.metrics.ObserveTrajectory(string(kind), points, elapsed)
	}

	lifted, err := surface.Lift(points, fn.F, surface.Offset(fn.ZRange, index))
	if err != nil {
		return Path{}, err
	}

	final := points[len(points)-1]
	value, err := fn.Eval(final)
	if err != nil {
		return Path{}, err
	}
	p := Path{
		Kind:   kind,
		Points: points,
		Lifted: lifted,
		Final:  final,
		Value:  value,
		Finite: final.AllFinite(),
	}

	event := logger.Debug()
	if !p.Finite {
		event = logger.Warn()
	}
	event.
		Str("optimizer", string(kind)).
		Floats64("final", final).
		Float64("value", p.Value).
		Dur("elapsed", elapsed).
		Msg("Trajectory sampled")

	return p, nil
}
