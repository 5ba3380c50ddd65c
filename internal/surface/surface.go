// Package surface samples objective surfaces and lifts 2D trajectories onto
// them, producing the data a plotting front end draws.
package surface

import (
	"errors"
	"fmt"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/objective"
	"github.com/born-ml/descent/internal/parallel"
	"github.com/born-ml/descent/internal/vec"
)

// ErrInvalidSteps is returned by Grid when steps < 1.
var ErrInvalidSteps = errors.New("surface: grid needs at least one step per axis")

// offsetFraction of the z range separates stacked paths visually.
const offsetFraction = 0.005

// Mesh is a regular grid of surface samples. Row j holds y = Y[j][*] and
// x running along the row; Z[j][i] = f(X[j][i], Y[j][i]).
type Mesh struct {
	X [][]float64 `json:"x" yaml:"x"`
	Y [][]float64 `json:"y" yaml:"y"`
	Z [][]float64 `json:"z" yaml:"z"`
}

// Point3 is a trajectory point lifted onto the surface.
type Point3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Grid samples f on (steps+1) × (steps+1) points spanning xr and yr
// inclusive. Rows are evaluated according to cfg.
func Grid(f gradient.Surface, steps int, xr, yr objective.Range, cfg parallel.Config) (*Mesh, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	if f == nil {
		return nil, errors.New("surface: function is nil")
	}

	n := steps + 1
	dx := xr.Span() / float64(steps)
	dy := yr.Span() / float64(steps)

	m := &Mesh{
		X: make([][]float64, n),
		Y: make([][]float64, n),
		Z: make([][]float64, n),
	}
	parallel.For(n, func(j int) {
		y := yr.Min + float64(j)*dy
		xs := make([]float64, n)
		ys := make([]float64, n)
		zs := make([]float64, n)
		for i := 0; i < n; i++ {
			x := xr.Min + float64(i)*dx
			xs[i], ys[i], zs[i] = x, y, f(x, y)
		}
		m.X[j], m.Y[j], m.Z[j] = xs, ys, zs
	}, cfg)
	return m, nil
}

// Offset returns the z offset for the index-th path drawn over a surface
// whose z window is zr, so that overlapping paths remain distinguishable.
func Offset(zr objective.Range, index int) float64 {
	return zr.Span() * offsetFraction * (1 + 0.5*float64(index))
}

// Lift attaches z = f(x, y) + offset to every point of a 2D trajectory.
func Lift(path []vec.Vector, f gradient.Surface, offset float64) ([]Point3, error) {
	out := make([]Point3, len(path))
	for i, p := range path {
		if err := vec.CheckDim(2, len(p)); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		out[i] = Point3{X: p[0], Y: p[1], Z: f(p[0], p[1]) + offset}
	}
	return out, nil
}
