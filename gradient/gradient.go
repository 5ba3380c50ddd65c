// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gradient provides finite-difference gradient estimation.
package gradient

import (
	"github.com/born-ml/descent/internal/gradient"
)

// Step sizes for the central-difference estimator.
const (
	StepCoarse = gradient.StepCoarse
	StepFine   = gradient.StepFine
)

// ErrInvalidStep is returned for non-positive step sizes.
var ErrInvalidStep = gradient.ErrInvalidStep

// Func maps a point to the gradient at that point.
type Func = gradient.Func

// Objective is a scalar function of a vector.
type Objective = gradient.Objective

// Surface is a scalar function of two variables.
type Surface = gradient.Surface

// MakeGradient returns the central-difference gradient of a two-variable
// surface with step h.
func MakeGradient(f Surface, h float64) (Func, error) {
	return gradient.MakeGradient(f, h)
}

// Central returns the central-difference gradient of f with step h.
func Central(f Objective, h float64) (Func, error) {
	return gradient.Central(f, h)
}
