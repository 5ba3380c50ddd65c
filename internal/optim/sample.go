package optim

import (
	"fmt"

	"github.com/born-ml/descent/internal/vec"
)

// Sample drives o for n-1 steps and returns the n visited points.
//
// The first point is o's current point, obtained without evaluating the
// gradient; every further point is the result of exactly one Step. Sampling
// continues from wherever o currently is, so calling Sample twice on the
// same optimizer extends the trajectory rather than repeating it. Sample(o, 1)
// returns only the current point.
//
// n < 1 is rejected with ErrInvalidSteps. A Step error aborts sampling and
// is returned; non-finite points are not errors and are kept.
func Sample(o Optimizer, n int) ([]vec.Vector, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, n)
	}

	points := make([]vec.Vector, 0, n)
	points = append(points, o.Current())
	for i := 1; i < n; i++ {
		p, err := o.Step()
		if err != nil {
			return nil, fmt.Errorf("%s step %d: %w", o.Name(), i, err)
		}
		points = append(points, p)
	}
	return points, nil
}
