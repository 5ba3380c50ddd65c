// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/vec"
)

// Vector is a point in parameter space.
type Vector = vec.Vector

// GradientFunc maps a point to the gradient of an objective at that point.
type GradientFunc = gradient.Func

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Kind names an optimizer variant.
type Kind = optim.Kind

// Hyperparameters is the union of every variant's settings.
type Hyperparameters = optim.Hyperparameters

// Optimizer kinds.
const (
	KindGradientDescent = optim.KindGradientDescent
	KindMomentum        = optim.KindMomentum
	KindNesterov        = optim.KindNesterov
	KindAdagrad         = optim.KindAdagrad
	KindAdadelta        = optim.KindAdadelta
	KindAdam            = optim.KindAdam
)

// Errors.
var (
	ErrEmptyStart        = optim.ErrEmptyStart
	ErrNilGradient       = optim.ErrNilGradient
	ErrInvalidSteps      = optim.ErrInvalidSteps
	ErrUnknownKind       = optim.ErrUnknownKind
	ErrDimensionMismatch = optim.ErrDimensionMismatch
)

// Gradient Descent

// GradientDescent represents plain gradient descent.
type GradientDescent = optim.GradientDescent

// GradientDescentConfig contains configuration for GradientDescent.
type GradientDescentConfig = optim.GradientDescentConfig

// NewGradientDescent creates a new GradientDescent optimizer.
//
// Example:
//
//	gd, err := optim.NewGradientDescent(optim.Vector{1, 1}, g, optim.GradientDescentConfig{
//	    LR: 0.1,
//	})
func NewGradientDescent(start Vector, g GradientFunc, config GradientDescentConfig) (*GradientDescent, error) {
	return optim.NewGradientDescent(start, g, config)
}

// Momentum and Nesterov

// Momentum represents gradient descent with classical momentum.
type Momentum = optim.Momentum

// Nesterov represents Nesterov accelerated gradient.
type Nesterov = optim.Nesterov

// MomentumConfig contains configuration for Momentum and Nesterov.
type MomentumConfig = optim.MomentumConfig

// NewMomentum creates a new Momentum optimizer.
func NewMomentum(start Vector, g GradientFunc, config MomentumConfig) (*Momentum, error) {
	return optim.NewMomentum(start, g, config)
}

// NewNesterov creates a new Nesterov optimizer.
func NewNesterov(start Vector, g GradientFunc, config MomentumConfig) (*Nesterov, error) {
	return optim.NewNesterov(start, g, config)
}

// Adagrad

// Adagrad represents the Adagrad optimizer.
type Adagrad = optim.Adagrad

// AdagradConfig contains configuration for Adagrad.
type AdagradConfig = optim.AdagradConfig

// NewAdagrad creates a new Adagrad optimizer.
func NewAdagrad(start Vector, g GradientFunc, config AdagradConfig) (*Adagrad, error) {
	return optim.NewAdagrad(start, g, config)
}

// Adadelta

// Adadelta represents the Adadelta optimizer.
type Adadelta = optim.Adadelta

// AdadeltaConfig contains configuration for Adadelta.
type AdadeltaConfig = optim.AdadeltaConfig

// NewAdadelta creates a new Adadelta optimizer.
func NewAdadelta(start Vector, g GradientFunc, config AdadeltaConfig) (*Adadelta, error) {
	return optim.NewAdadelta(start, g, config)
}

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer with bias correction.
//
// Example:
//
//	adam, err := optim.NewAdam(optim.Vector{1, 1}, g, optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	})
func NewAdam(start Vector, g GradientFunc, config AdamConfig) (*Adam, error) {
	return optim.NewAdam(start, g, config)
}

// Registry and sampling

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return optim.Kinds()
}

// ParseKind resolves a kind name.
func ParseKind(name string) (Kind, error) {
	return optim.ParseKind(name)
}

// DefaultHyperparameters returns commonly used settings.
func DefaultHyperparameters() Hyperparameters {
	return optim.DefaultHyperparameters()
}

// New builds the optimizer of the given kind.
func New(kind Kind, start Vector, g GradientFunc, hp Hyperparameters) (Optimizer, error) {
	return optim.New(kind, start, g, hp)
}

// Sample drives o for n-1 steps and returns the n visited points, starting
// with o's current point.
func Sample(o Optimizer, n int) ([]Vector, error) {
	return optim.Sample(o, n)
}
