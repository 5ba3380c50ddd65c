// Package objective provides benchmark surfaces for comparing optimizers.
//
// Each Function pairs a two-variable surface with the plotting window it is
// usually viewed in and a starting point where the optimizers visibly
// disagree. Some classic functions are scaled so their interesting region
// fits a common z range; the scale factor is part of Formula.
package objective

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// ErrNotFound is returned by Lookup for unknown names.
var ErrNotFound = errors.New("objective: function not found")

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// Function is a named benchmark surface.
type Function struct {
	Name    string
	Formula string // Human-readable form, display only
	F       gradient.Surface
	XRange  Range
	YRange  Range
	ZRange  Range
	Start   vec.Vector
}

// Gradient returns the central-difference gradient of the surface with step h.
func (f Function) Gradient(h float64) (gradient.Func, error) {
	g, err := gradient.MakeGradient(f.F, h)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}
	return g, nil
}

// Eval evaluates the surface at p, which must be two-dimensional.
func (f Function) Eval(p vec.Vector) (float64, error) {
	if err := vec.CheckDim(2, len(p)); err != nil {
		return 0, fmt.Errorf("%s: %w", f.Name, err)
	}
	return f.F(p[0], p[1]), nil
}

var builtin = []Function{
	{
		Name:    "Hyperbolic paraboloid",
		Formula: "x² - y²",
		F:       func(x, y float64) float64 { return x*x - y*y },
		XRange:  Range{-1, 1},
		YRange:  Range{-1, 1},
		ZRange:  Range{-1.5, 1.5},
		Start:   vec.Of(-0.5, 0.01),
	},
	{
		Name:    "Ripple",
		Formula: "sin(10(x² + y²))/20 + 0.3(x - 0.5)² + 0.2(y - 0.2)²",
		F: func(x, y float64) float64 {
			return math.Sin(10*(x*x+y*y))/20 + math.Pow(x-.5, 2)*.3 + math.Pow(y-.2, 2)*.2
		},
		XRange: Range{-1.8, 1.8},
		YRange: Range{-1.8, 1.8},
		ZRange: Range{-.5, 3},
		Start:  vec.Of(-1.386, -1.152),
	},
	{
		Name:    "Paraboloid",
		Formula: "x² + y²",
		F:       func(x, y float64) float64 { return x*x + y*y },
		XRange:  Range{-1, 1},
		YRange:  Range{-1, 1},
		ZRange:  Range{-.5, 3},
		Start:   vec.Of(-.5, -.5),
	},
	{
		Name:    "Beale's function",
		Formula: "1e-4 · [(1.5 - x + xy)² + (2.25 - x + xy²)² + (2.625 - x + xy³)²]",
		F: func(x, y float64) float64 {
			return (math.Pow(1.5-x+x*y, 2) +
				math.Pow(2.25-x+x*y*y, 2) +
				math.Pow(2.625-x+x*y*y*y, 2)) * .0001
		},
		XRange: Range{-4, 4},
		YRange: Range{-4, 4},
		ZRange: Range{-2, 10},
		Start:  vec.Of(-3, -3),
	},
	{
		Name:    "Styblinski-Tang function",
		Formula: "[(x⁴ - 16x² + 5x) + (y⁴ - 16y² + 5y)] / 2",
		F: func(x, y float64) float64 {
			return ((math.Pow(x, 4) - 16*x*x + 5*x) + (math.Pow(y, 4) - 16*y*y + 5*y)) / 2
		},
		XRange: Range{-4, 4},
		YRange: Range{-4, 4},
		ZRange: Range{-100, 100},
		Start:  vec.Of(-0.2, 0.88),
	},
	{
		Name:    "McCormick function",
		Formula: "sin(x + y) + (x - y)² - 1.5x + 2.5y + 1",
		F: func(x, y float64) float64 {
			return math.Sin(x+y) + math.Pow(x-y, 2) - 1.5*x + 2.5*y + 1
		},
		XRange: Range{-1.5, 4},
		YRange: Range{-3, 4},
		ZRange: Range{-10, 50},
		Start:  vec.Of(-0.6475, 3.44),
	},
	{
		Name:    "Rosenbrock function",
		Formula: "0.01 · 100(y - x²)² + (1 - x)²",
		F: func(x, y float64) float64 {
			return .01*(100*math.Pow(y-x*x, 2)) + math.Pow(1-x, 2)
		},
		XRange: Range{-2, 2},
		YRange: Range{-1, 3},
		ZRange: Range{-3, 40},
		Start:  vec.Of(1.5, -.5),
	},
	{
		Name: "Goldstein-Price function",
		Formula: "1e-5 · [1 + (x + y + 1)²(19 - 14x + 3x² - 14y + 6xy + 3y²)]" +
			" · [30 + (2x - 3y)²(18 - 32x + 12x² + 48y - 36xy + 27y²)]",
		F: func(x, y float64) float64 {
			return .00001 * (1 + math.Pow(x+y+1, 2)*(19-14*x+3*x*x-14*y+6*x*y+3*y*y)) *
				(30 + math.Pow(2*x-3*y, 2)*(18-32*x+12*x*x+48*y-36*x*y+27*y*y))
		},
		XRange: Range{-2, 2},
		YRange: Range{-2, 1.5},
		ZRange: Range{-3, 6},
		Start:  vec.Of(-1, 1),
	},
}

// All returns the built-in functions in display order.
func All() []Function {
	out := make([]Function, len(builtin))
	for i, f := range builtin {
		f.Start = f.Start.Clone()
		out[i] = f
	}
	return out
}

// Default returns the first built-in function.
func Default() Function {
	return All()[0]
}

// Names returns the built-in names sorted alphabetically.
func Names() []string {
	names := make([]string, len(builtin))
	for i, f := range builtin {
		names[i] = f.Name
	}
	sort.Strings(names)
	return names
}

// Lookup finds a built-in function by name. Matching ignores case and also
// accepts the name's first word ("rosenbrock", "beale's").
func Lookup(name string) (Function, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, f := range All() {
		full := strings.ToLower(f.Name)
		if full == key || strings.Fields(full)[0] == key {
			return f, nil
		}
	}
	return Function{}, fmt.Errorf("%w: %q (known: %s)", ErrNotFound, name, strings.Join(Names(), ", "))
}
