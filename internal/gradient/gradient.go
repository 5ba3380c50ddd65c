// Package gradient turns black-box scalar objectives into gradient functions.
//
// The estimator uses central differences:
//
//	∂f/∂x_i ≈ (f(p + h·e_i) - f(p - h·e_i)) / (2h)
//
// Two step sizes are in common use. StepCoarse (1e-4) keeps cancellation
// error small and suits most smooth surfaces; StepFine (1e-8) has lower
// truncation error on strongly curved surfaces but loses precision to
// floating-point cancellation. Callers choose.
package gradient

import (
	"errors"
	"fmt"
	"math"

	"github.com/born-ml/descent/internal/vec"
)

// Step sizes used by the estimator.
const (
	StepCoarse = 1e-4
	StepFine   = 1e-8
)

// ErrInvalidStep is returned when the finite-difference step is not a
// positive finite number.
var ErrInvalidStep = errors.New("gradient: step size must be positive")

// Func maps a point to the partial derivatives of an objective at that point.
// The result has the same dimension as the input.
type Func func(p vec.Vector) vec.Vector

// Objective is a scalar function of a vector.
type Objective func(p vec.Vector) float64

// Surface is a scalar function of two variables.
type Surface func(x, y float64) float64

// FromXY adapts a two-variable surface to an Objective over 2D vectors.
// Points of any other dimension evaluate to NaN.
func FromXY(f Surface) Objective {
	return func(p vec.Vector) float64 {
		if len(p) != 2 {
			return math.NaN()
		}
		return f(p[0], p[1])
	}
}

// Central returns the central-difference gradient of f with step h.
//
// The returned Func holds only f and h. It performs 2·len(p) evaluations of
// f per call and does not inspect the results: NaN or infinite objective
// values produce non-finite gradient components.
func Central(f Objective, h float64) (Func, error) {
	if f == nil {
		return nil, errors.New("gradient: objective is nil")
	}
	if !(h > 0) || math.IsInf(h, 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidStep, h)
	}

	d := 1 / (2 * h)
	return func(p vec.Vector) vec.Vector {
		grad := make(vec.Vector, len(p))
		probe := p.Clone()
		for i, x := range p {
			probe[i] = x + h
			fwd := f(probe)
			probe[i] = x - h
			bwd := f(probe)
			probe[i] = x
			grad[i] = d * (fwd - bwd)
		}
		return grad
	}, nil
}

// MakeGradient is Central for two-variable surfaces.
//
// The returned Func always yields two components. Given a point that is not
// 2D it returns a nil gradient, which optimizers reject as a dimension
// mismatch instead of padding or truncating the point.
func MakeGradient(f Surface, h float64) (Func, error) {
	if f == nil {
		return nil, errors.New("gradient: surface is nil")
	}
	g, err := Central(FromXY(f), h)
	if err != nil {
		return nil, err
	}
	return func(p vec.Vector) vec.Vector {
		if len(p) != 2 {
			return nil
		}
		return g(p)
	}, nil
}
