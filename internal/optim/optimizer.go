// Package optim implements first-order iterative optimizers over small
// fixed-dimension vectors.
//
// This package provides:
//   - Optimizer interface: the one iteration contract shared by all variants
//   - GradientDescent, Momentum, Nesterov, Adagrad, Adadelta, Adam
//   - Sample: drives an optimizer for N steps and collects the trajectory
//   - New: builds any variant by Kind from a shared Hyperparameters set
//
// An optimizer is constructed from a starting point and a gradient function.
// It owns its state exclusively; each Step reads the pre-step state and
// replaces it wholesale. Instances are not safe for concurrent use, but
// separate instances share nothing and can run in parallel.
//
// Example usage:
//
//	g, _ := gradient.MakeGradient(func(x, y float64) float64 {
//	    return x*x + y*y
//	}, gradient.StepCoarse)
//
//	opt, _ := optim.NewAdam(vec.Of(1, 1), g, optim.AdamConfig{
//	    LR:    0.1,
//	    Betas: [2]float64{0.9, 0.999},
//	})
//
//	path, _ := optim.Sample(opt, 100)
package optim

import (
	"fmt"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// epsilon guards divisions by accumulated statistics that may still be zero.
const epsilon = 1e-8

// Optimizer is the base interface for all optimization algorithms.
//
// All optimizers must implement:
//   - Step: advance one iteration and return the new current point
//   - Current: the most recently produced point
//   - Name: the variant name, for logging and metrics
type Optimizer interface {
	// Step advances the optimizer by one iteration.
	//
	// The gradient is evaluated exactly once (at the current point, or at
	// the look-ahead point for Nesterov). If the gradient function returns a
	// vector of the wrong dimension Step fails with ErrDimensionMismatch
	// and leaves the state untouched. Non-finite values are not errors.
	Step() (vec.Vector, error)

	// Current returns a copy of the current point.
	Current() vec.Vector

	// Name returns the variant name.
	Name() string
}

// trajectory is the state common to every variant: the current point and
// the gradient function that moves it.
type trajectory struct {
	current  vec.Vector
	gradient gradient.Func
}

func newTrajectory(start vec.Vector, g gradient.Func) (trajectory, error) {
	if len(start) == 0 {
		return trajectory{}, ErrEmptyStart
	}
	if g == nil {
		return trajectory{}, ErrNilGradient
	}
	return trajectory{current: start.Clone(), gradient: g}, nil
}

// Current returns a copy of the current point.
func (t *trajectory) Current() vec.Vector {
	return t.current.Clone()
}

// dim returns the dimension fixed at construction.
func (t *trajectory) dim() int {
	return len(t.current)
}

// evaluate calls the gradient function at p and checks the result's
// dimension against the starting point.
func (t *trajectory) evaluate(p vec.Vector) (vec.Vector, error) {
	grad := t.gradient(p.Clone())
	if err := vec.CheckDim(t.dim(), len(grad)); err != nil {
		return nil, fmt.Errorf("gradient output: %w", err)
	}
	return grad, nil
}

// advance commits next as the current point and returns a copy for the caller.
func (t *trajectory) advance(next vec.Vector) vec.Vector {
	t.current = next
	return next.Clone()
}
