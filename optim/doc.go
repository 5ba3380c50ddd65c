// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides first-order optimizers for small vectors.
//
// # Overview
//
// This package contains:
//   - GradientDescent: plain gradient descent
//   - Momentum: gradient descent with classical momentum
//   - Nesterov: Nesterov accelerated gradient
//   - Adagrad: per-component learning rates from accumulated squared gradients
//   - Adadelta: learning-rate-free adaptive updates
//   - Adam: Adaptive Moment Estimation with bias correction
//   - Sample: trajectory sampling shared by every optimizer
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/descent/gradient"
//	    "github.com/born-ml/descent/optim"
//	)
//
//	func main() {
//	    g, err := gradient.MakeGradient(func(x, y float64) float64 {
//	        return x*x + y*y
//	    }, gradient.StepCoarse)
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    opt, err := optim.NewMomentum(optim.Vector{1, 1}, g, optim.MomentumConfig{
//	        LR:       0.01,
//	        Momentum: 0.9,
//	    })
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    path, err := optim.Sample(opt, 100)
//	    // path[0] is the start, path[99] the point after 99 steps.
//	}
//
// # Optimizers by kind
//
//	for _, kind := range optim.Kinds() {
//	    opt, err := optim.New(kind, start, g, optim.DefaultHyperparameters())
//	    ...
//	}
//
// # Trajectories
//
// Sample(opt, 1) returns the current point without evaluating the gradient.
// Sampling again continues from where the optimizer stopped. Counts below 1
// return ErrInvalidSteps. NaN and infinite points are returned as data.
package optim
