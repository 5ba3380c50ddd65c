// Package vec provides the fixed-length real vectors optimizers move through.
//
// A Vector is a point in parameter space (or a gradient, or an accumulator
// with the same shape). All binary operations return a freshly allocated
// Vector and never write into their operands, so callers may keep references
// to previous points without copying them. Operands of different dimensions
// panic, as in gonum/floats.
package vec

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrDimensionMismatch is returned when two vectors that must share a
// dimension do not.
var ErrDimensionMismatch = errors.New("vec: dimension mismatch")

// Vector is an ordered, fixed-length sequence of real numbers.
type Vector []float64

// Zeros returns an all-zero vector of dimension n.
//
// Every optimizer accumulator (velocity, squared gradients, moments) starts
// from Zeros(len(start)).
func Zeros(n int) Vector {
	return make(Vector, n)
}

// Of builds a vector from its components.
func Of(values ...float64) Vector {
	return Vector(values).Clone()
}

// Clone returns a copy of v that shares no memory with it.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return floats.AddTo(make(Vector, len(v)), v, w)
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	return floats.SubTo(make(Vector, len(v)), v, w)
}

// Mul returns the element-wise (Hadamard) product of v and w.
func (v Vector) Mul(w Vector) Vector {
	return floats.MulTo(make(Vector, len(v)), v, w)
}

// Scale returns s * v.
func (v Vector) Scale(s float64) Vector {
	return floats.ScaleTo(make(Vector, len(v)), s, v)
}

// AddScaled returns v + alpha*w.
func (v Vector) AddScaled(alpha float64, w Vector) Vector {
	return floats.AddScaledTo(make(Vector, len(v)), v, alpha, w)
}

// AllFinite reports whether no component is NaN or infinite.
func (v Vector) AllFinite() bool {
	if len(v) == 0 {
		return true
	}
	if floats.HasNaN(v) {
		return false
	}
	return !math.IsInf(floats.Max(v), 1) && !math.IsInf(floats.Min(v), -1)
}

// Equal reports whether v and w have the same dimension and every pair of
// components is within tol, absolutely or relatively.
func Equal(v, w Vector, tol float64) bool {
	return floats.EqualApprox(v, w, tol)
}

// CheckDim returns an error wrapping ErrDimensionMismatch when got != want.
func CheckDim(want, got int) error {
	if want != got {
		return fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, want, got)
	}
	return nil
}
