package optim

import (
	"math"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// Adadelta implements the Adadelta optimizer.
//
// Update rule, with smoothing term s:
//
//	E[g²]  = s * E[g²] + (1-s) * gradient²
//	delta  = -sqrt(E[Δ²] + eps) / sqrt(E[g²] + eps) * gradient   // previous E[Δ²]
//	E[Δ²]  = s * E[Δ²] + (1-s) * delta²
//	param  = param + delta
//
// There is no learning rate: the ratio of the RMS of past updates to the RMS
// of gradients sets the step size. Both averages start at zero, so a
// component whose gradient stays zero never moves and keeps zero averages.
type Adadelta struct {
	trajectory
	smoothing float64
	gt        vec.Vector // Running average of squared gradients
	vt        vec.Vector // Running average of squared updates
}

// AdadeltaConfig holds configuration for Adadelta.
type AdadeltaConfig struct {
	Smoothing float64 // Decay of both running averages, in [0, 1)
}

// NewAdadelta creates a new Adadelta optimizer with zero running averages.
func NewAdadelta(start vec.Vector, g gradient.Func, config AdadeltaConfig) (*Adadelta, error) {
	tr, err := newTrajectory(start, g)
	if err != nil {
		return nil, err
	}
	return &Adadelta{
		trajectory: tr,
		smoothing:  config.Smoothing,
		gt:         vec.Zeros(len(start)),
		vt:         vec.Zeros(len(start)),
	}, nil
}

// Step performs a single Adadelta step.
func (a *Adadelta) Step() (vec.Vector, error) {
	grad, err := a.evaluate(a.current)
	if err != nil {
		return nil, err
	}

	s := a.smoothing
	gt := make(vec.Vector, a.dim())
	vt := make(vec.Vector, a.dim())
	next := make(vec.Vector, a.dim())
	for i, theta := range a.current {
		g := grad[i]

		gt[i] = s*a.gt[i] + (1-s)*g*g

		// The update reads the running average of updates before it changes.
		delta := -(math.Sqrt(a.vt[i]+epsilon) / math.Sqrt(gt[i]+epsilon)) * g

		vt[i] = s*a.vt[i] + (1-s)*delta*delta
		next[i] = theta + delta
	}
	a.gt = gt
	a.vt = vt
	return a.advance(next), nil
}

// Name returns the variant name.
func (a *Adadelta) Name() string {
	return string(KindAdadelta)
}
