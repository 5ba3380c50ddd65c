package optim

import (
	"math"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// Adagrad implements the Adagrad optimizer.
//
// Update rule:
//
//	G = G + gradient²
//	param = param - lr / sqrt(G + eps) * gradient
//
// G never decreases, so each component's effective learning rate shrinks
// monotonically and long runs stall.
type Adagrad struct {
	trajectory
	lr float64
	gt vec.Vector // Accumulated squared gradients
}

// AdagradConfig holds configuration for Adagrad.
type AdagradConfig struct {
	LR float64 // Learning rate
}

// NewAdagrad creates a new Adagrad optimizer with a zero accumulator.
func NewAdagrad(start vec.Vector, g gradient.Func, config AdagradConfig) (*Adagrad, error) {
	tr, err := newTrajectory(start, g)
	if err != nil {
		return nil, err
	}
	return &Adagrad{
		trajectory: tr,
		lr:         config.LR,
		gt:         vec.Zeros(len(start)),
	}, nil
}

// Step performs a single Adagrad step.
func (a *Adagrad) Step() (vec.Vector, error) {
	grad, err := a.evaluate(a.current)
	if err != nil {
		return nil, err
	}

	gt := a.gt.Add(grad.Mul(grad))
	next := make(vec.Vector, a.dim())
	for i, theta := range a.current {
		next[i] = theta - (a.lr/math.Sqrt(gt[i]+epsilon))*grad[i]
	}
	a.gt = gt
	return a.advance(next), nil
}

// Name returns the variant name.
func (a *Adagrad) Name() string {
	return string(KindAdagrad)
}

// GetLR returns the learning rate.
func (a *Adagrad) GetLR() float64 {
	return a.lr
}
