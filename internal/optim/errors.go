package optim

import (
	"errors"

	"github.com/born-ml/descent/internal/vec"
)

// Common errors.
var (
	ErrEmptyStart   = errors.New("optim: starting point has no components")
	ErrNilGradient  = errors.New("optim: gradient function is nil")
	ErrInvalidSteps = errors.New("optim: step count must be at least 1")
	ErrUnknownKind  = errors.New("optim: unknown optimizer kind")

	// ErrDimensionMismatch is vec.ErrDimensionMismatch, re-exported so callers
	// of this package need not import vec to match it.
	ErrDimensionMismatch = vec.ErrDimensionMismatch
)
