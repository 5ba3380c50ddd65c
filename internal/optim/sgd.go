package optim

import (
	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// GradientDescent implements plain gradient descent.
//
// Update rule:
//
//	param = param - lr * gradient
//
// The gradient is evaluated once against the pre-update point and applied
// to all components simultaneously. A learning rate of 0 never moves.
//
// Example:
//
//	gd, err := optim.NewGradientDescent(vec.Of(1, 1), g, optim.GradientDescentConfig{
//	    LR: 0.1,
//	})
type GradientDescent struct {
	trajectory
	lr float64
}

// GradientDescentConfig holds configuration for GradientDescent.
type GradientDescentConfig struct {
	LR float64 // Learning rate
}

// NewGradientDescent creates a new GradientDescent optimizer.
//
// Parameters:
//   - start: starting point (copied)
//   - g: gradient function
//   - config: learning rate, used as given
func NewGradientDescent(start vec.Vector, g gradient.Func, config GradientDescentConfig) (*GradientDescent, error) {
	tr, err := newTrajectory(start, g)
	if err != nil {
		return nil, err
	}
	return &GradientDescent{trajectory: tr, lr: config.LR}, nil
}

// Step performs a single gradient descent step.
func (s *GradientDescent) Step() (vec.Vector, error) {
	grad, err := s.evaluate(s.current)
	if err != nil {
		return nil, err
	}

	return s.advance(s.current.AddScaled(-s.lr, grad)), nil
}

// Name returns the variant name.
func (s *GradientDescent) Name() string {
	return string(KindGradientDescent)
}

// GetLR returns the learning rate.
func (s *GradientDescent) GetLR() float64 {
	return s.lr
}
