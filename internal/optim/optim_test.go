package optim_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/optim"
	"github.com/born-ml/descent/internal/vec"
)

// paraboloidGrad is the analytical gradient of f(x, y) = x² + y².
func paraboloidGrad(p vec.Vector) vec.Vector {
	return vec.Of(2*p[0], 2*p[1])
}

// counting wraps g and counts its evaluations.
func counting(g gradient.Func) (gradient.Func, *int) {
	n := 0
	return func(p vec.Vector) vec.Vector {
		n++
		return g(p)
	}, &n
}

func newAll(t *testing.T, start vec.Vector, g gradient.Func) []optim.Optimizer {
	t.Helper()

	hp := optim.DefaultHyperparameters()
	out := make([]optim.Optimizer, 0, len(optim.Kinds()))
	for _, k := range optim.Kinds() {
		o, err := optim.New(k, start, g, hp)
		require.NoError(t, err, "kind %s", k)
		out = append(out, o)
	}
	return out
}

// TestGradientDescent_SimpleUpdate tests two steps on the paraboloid.
func TestGradientDescent_SimpleUpdate(t *testing.T) {
	gd, err := optim.NewGradientDescent(vec.Of(1, 1), paraboloidGrad, optim.GradientDescentConfig{LR: 0.1})
	require.NoError(t, err)

	// x_1 = 1 - 0.1 * 2 * 1 = 0.8
	p, err := gd.Step()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, p[0], 1e-12)
	assert.InDelta(t, 0.8, p[1], 1e-12)

	// x_2 = 0.8 - 0.1 * 2 * 0.8 = 0.64
	p, err = gd.Step()
	require.NoError(t, err)
	assert.True(t, vec.Equal(vec.Of(0.64, 0.64), p, 1e-12))
	assert.Equal(t, 0.1, gd.GetLR())
}

// TestGradientDescent_ZeroLearningRate tests that lr = 0 never moves.
func TestGradientDescent_ZeroLearningRate(t *testing.T) {
	start := vec.Of(0.3, -1.7)
	gd, err := optim.NewGradientDescent(start, paraboloidGrad, optim.GradientDescentConfig{LR: 0})
	require.NoError(t, err)

	path, err := optim.Sample(gd, 10)
	require.NoError(t, err)
	require.Len(t, path, 10)
	for _, p := range path {
		assert.Equal(t, start, p)
	}
}

// TestGradientDescent_SimultaneousUpdate tests that every component is
// updated against the pre-step point.
func TestGradientDescent_SimultaneousUpdate(t *testing.T) {
	// f = x*y, gradient [y, x]
	g := func(p vec.Vector) vec.Vector { return vec.Of(p[1], p[0]) }
	gd, err := optim.NewGradientDescent(vec.Of(1, 2), g, optim.GradientDescentConfig{LR: 0.5})
	require.NoError(t, err)

	// x = 1 - 0.5*2 = 0, y = 2 - 0.5*1 = 1.5 (not 2 - 0.5*0)
	p, err := gd.Step()
	require.NoError(t, err)
	assert.Equal(t, vec.Vector{0, 1.5}, p)
}

// TestMomentum_TwoSteps tests velocity accumulation.
func TestMomentum_TwoSteps(t *testing.T) {
	m, err := optim.NewMomentum(vec.Of(1, 1), paraboloidGrad, optim.MomentumConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, err)

	// v_1 = 0.9*0 + 0.1*2 = 0.2, x_1 = 1 - 0.2 = 0.8
	p, err := m.Step()
	require.NoError(t, err)
	assert.InDelta(t, 0.8, p[0], 1e-12)
	assert.True(t, vec.Equal(vec.Of(0.2, 0.2), m.Velocity(), 1e-12))

	// v_2 = 0.9*0.2 + 0.1*1.6 = 0.34, x_2 = 0.8 - 0.34 = 0.46
	p, err = m.Step()
	require.NoError(t, err)
	assert.InDelta(t, 0.46, p[0], 1e-12)
	assert.InDelta(t, 0.46, p[1], 1e-12)
}

// TestNesterov_LookAhead tests that the gradient is taken at the look-ahead point.
func TestNesterov_LookAhead(t *testing.T) {
	n, err := optim.NewNesterov(vec.Of(1, 1), paraboloidGrad, optim.MomentumConfig{LR: 0.1, Momentum: 0.9})
	require.NoError(t, err)

	_, err = n.Step()
	require.NoError(t, err)

	// lookahead = 0.8 - 0.9*0.2 = 0.62, grad = 1.24
	// v_2 = 0.9*0.2 + 0.1*1.24 = 0.304, x_2 = 0.8 - 0.304 = 0.496
	p, err := n.Step()
	require.NoError(t, err)
	assert.InDelta(t, 0.496, p[0], 1e-12)
	assert.InDelta(t, 0.304, n.Velocity()[1], 1e-12)
}

// TestNesterov_FirstStepMatchesMomentum tests that with zero velocity the
// look-ahead point is the current point.
func TestNesterov_FirstStepMatchesMomentum(t *testing.T) {
	cfg := optim.MomentumConfig{LR: 0.05, Momentum: 0.8}
	g := func(p vec.Vector) vec.Vector {
		return vec.Of(math.Sin(p[0])+p[1], 3*p[1]*p[1])
	}

	m, err := optim.NewMomentum(vec.Of(0.7, -0.4), g, cfg)
	require.NoError(t, err)
	n, err := optim.NewNesterov(vec.Of(0.7, -0.4), g, cfg)
	require.NoError(t, err)

	pm, err := m.Step()
	require.NoError(t, err)
	pn, err := n.Step()
	require.NoError(t, err)
	assert.Equal(t, pm, pn)

	// Afterwards the trajectories diverge.
	pm, err = m.Step()
	require.NoError(t, err)
	pn, err = n.Step()
	require.NoError(t, err)
	assert.NotEqual(t, pm, pn)
}

// TestAdagrad_DecreasingSteps tests that a constant gradient yields strictly
// shrinking steps.
func TestAdagrad_DecreasingSteps(t *testing.T) {
	constant := func(p vec.Vector) vec.Vector { return vec.Of(1, -3) }
	a, err := optim.NewAdagrad(vec.Of(0, 0), constant, optim.AdagradConfig{LR: 0.5})
	require.NoError(t, err)

	path, err := optim.Sample(a, 20)
	require.NoError(t, err)

	prev := math.Inf(1)
	for i := 1; i < len(path); i++ {
		step := math.Abs(path[i][0] - path[i-1][0])
		assert.Less(t, step, prev, "step %d", i)
		prev = step
	}

	// First step: lr / sqrt(1 + eps) * 1 ≈ 0.5
	assert.InDelta(t, -0.5, path[1][0], 1e-8)
	assert.InDelta(t, 0.5, path[1][1], 1e-8)
}

// TestAdadelta_FirstStep tests the update against the formula.
func TestAdadelta_FirstStep(t *testing.T) {
	a, err := optim.NewAdadelta(vec.Of(1, 1), paraboloidGrad, optim.AdadeltaConfig{Smoothing: 0.9})
	require.NoError(t, err)

	p, err := a.Step()
	require.NoError(t, err)

	// gt = 0.1 * 2² = 0.4, delta = -(sqrt(eps) / sqrt(0.4 + eps)) * 2
	delta := -(math.Sqrt(1e-8) / math.Sqrt(0.4+1e-8)) * 2
	assert.InDelta(t, 1+delta, p[0], 1e-15)
	assert.InDelta(t, 1+delta, p[1], 1e-15)
}

// TestAdadelta_ZeroGradientComponent tests that a zero gradient component
// produces a finite, zero update.
func TestAdadelta_ZeroGradientComponent(t *testing.T) {
	g := func(p vec.Vector) vec.Vector { return vec.Of(2*p[0], 0) }
	a, err := optim.NewAdadelta(vec.Of(1, 1), g, optim.AdadeltaConfig{Smoothing: 0.95})
	require.NoError(t, err)

	path, err := optim.Sample(a, 50)
	require.NoError(t, err)
	for _, p := range path {
		assert.True(t, p.AllFinite())
		assert.Equal(t, 1.0, p[1])
	}
	assert.Less(t, path[len(path)-1][0], 1.0)
}

// TestAdam_FirstStep tests bias correction at t = 1.
func TestAdam_FirstStep(t *testing.T) {
	adam, err := optim.NewAdam(vec.Of(1, -2), paraboloidGrad, optim.AdamConfig{
		LR:    0.1,
		Betas: [2]float64{0.9, 0.999},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, adam.GetTimestep())

	p, err := adam.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, adam.GetTimestep())

	// m_hat = g, v_hat = g², so the step is lr * g / (|g| + eps) ≈ lr * sign(g)
	mHat, vHat := adam.Moments()
	assert.InDelta(t, 2.0, mHat[0], 1e-12)
	assert.InDelta(t, -4.0, mHat[1], 1e-12)
	assert.InDelta(t, 4.0, vHat[0], 1e-12)
	assert.InDelta(t, 16.0, vHat[1], 1e-12)

	assert.InDelta(t, 0.9, p[0], 1e-8)
	assert.InDelta(t, -1.9, p[1], 1e-8)
}

// TestAdam_BiasCorrection tests that timesteps increment and the point moves
// against a positive gradient.
func TestAdam_BiasCorrection(t *testing.T) {
	constant := func(p vec.Vector) vec.Vector { return vec.Of(1) }
	adam, err := optim.NewAdam(vec.Of(1), constant, optim.AdamConfig{
		LR:    0.01,
		Betas: [2]float64{0.9, 0.999},
	})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		_, err := adam.Step()
		require.NoError(t, err)
		assert.Equal(t, i, adam.GetTimestep())

		// With a constant gradient the corrected moments equal g and g².
		mHat, vHat := adam.Moments()
		assert.InDelta(t, 1.0, mHat[0], 1e-12)
		assert.InDelta(t, 1.0, vHat[0], 1e-12)
	}

	// Each corrected step is lr * 1 / (1 + eps).
	assert.InDelta(t, 1-3*0.01, adam.Current()[0], 1e-8)
}

// TestSample_SinglePointNoEvaluations tests Sample(o, 1) for every variant.
func TestSample_SinglePointNoEvaluations(t *testing.T) {
	g, calls := counting(paraboloidGrad)
	start := vec.Of(0.25, -0.5)

	for _, o := range newAll(t, start, g) {
		path, err := optim.Sample(o, 1)
		require.NoError(t, err, o.Name())
		assert.Equal(t, []vec.Vector{start}, path, o.Name())
	}
	assert.Equal(t, 0, *calls)
}

// TestSample_OneEvaluationPerStep tests that a trajectory of n points costs
// n-1 gradient evaluations.
func TestSample_OneEvaluationPerStep(t *testing.T) {
	for _, k := range optim.Kinds() {
		g, calls := counting(paraboloidGrad)
		o, err := optim.New(k, vec.Of(1, 1), g, optim.DefaultHyperparameters())
		require.NoError(t, err)

		path, err := optim.Sample(o, 7)
		require.NoError(t, err)
		assert.Len(t, path, 7, string(k))
		assert.Equal(t, 6, *calls, string(k))
	}
}

// TestSample_ContinuesFromState tests that sampling again resumes from the
// last point reached.
func TestSample_ContinuesFromState(t *testing.T) {
	for _, o := range newAll(t, vec.Of(1, 1), paraboloidGrad) {
		first, err := optim.Sample(o, 5)
		require.NoError(t, err)

		again, err := optim.Sample(o, 1)
		require.NoError(t, err)
		assert.Equal(t, []vec.Vector{first[4]}, again, o.Name())

		more, err := optim.Sample(o, 3)
		require.NoError(t, err)
		assert.Equal(t, first[4], more[0], o.Name())
	}
}

// TestSample_InvalidCount tests that n < 1 is rejected.
func TestSample_InvalidCount(t *testing.T) {
	gd, err := optim.NewGradientDescent(vec.Of(1, 1), paraboloidGrad, optim.GradientDescentConfig{LR: 0.1})
	require.NoError(t, err)

	for _, n := range []int{0, -1} {
		path, err := optim.Sample(gd, n)
		assert.Nil(t, path)
		assert.True(t, errors.Is(err, optim.ErrInvalidSteps))
	}
}

// TestSample_ReturnedPointsAreCopies tests that callers cannot mutate state
// through returned vectors.
func TestSample_ReturnedPointsAreCopies(t *testing.T) {
	start := vec.Of(1, 1)
	gd, err := optim.NewGradientDescent(start, paraboloidGrad, optim.GradientDescentConfig{LR: 0.1})
	require.NoError(t, err)

	start[0] = 100
	path, err := optim.Sample(gd, 2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, path[0][0])

	path[1][0] = -100
	assert.InDelta(t, 0.8, gd.Current()[0], 1e-12)
}

// TestDimensionMismatch tests that a gradient of the wrong length fails the
// first step and leaves the state unchanged.
func TestDimensionMismatch(t *testing.T) {
	bad := func(p vec.Vector) vec.Vector { return vec.Of(1, 2, 3) }

	for _, o := range newAll(t, vec.Of(1, 1), bad) {
		_, err := o.Step()
		require.Error(t, err, o.Name())
		assert.True(t, errors.Is(err, optim.ErrDimensionMismatch), o.Name())
		assert.Equal(t, vec.Vector{1, 1}, o.Current(), o.Name())

		_, err = optim.Sample(o, 3)
		assert.True(t, errors.Is(err, optim.ErrDimensionMismatch), o.Name())
	}
}

// TestDimensionMismatch_SurfaceGradient tests that a start point that is not
// 2D fails on the first step of a surface gradient instead of being padded,
// truncated or indexed out of range.
func TestDimensionMismatch_SurfaceGradient(t *testing.T) {
	g, err := gradient.MakeGradient(func(x, y float64) float64 { return x*x + y*y }, gradient.StepCoarse)
	require.NoError(t, err)

	for _, start := range []vec.Vector{vec.Of(1), vec.Of(1, 1, 1)} {
		for _, o := range newAll(t, start, g) {
			var err error
			require.NotPanics(t, func() { _, err = o.Step() }, o.Name())
			require.Error(t, err, o.Name())
			assert.True(t, errors.Is(err, optim.ErrDimensionMismatch), o.Name())
			assert.Equal(t, start, o.Current(), o.Name())

			points, err := optim.Sample(o, 4)
			assert.Nil(t, points, o.Name())
			assert.True(t, errors.Is(err, optim.ErrDimensionMismatch), o.Name())
		}
	}
}

// TestNonFinitePropagates tests that NaN gradients flow into the trajectory
// instead of failing it.
func TestNonFinitePropagates(t *testing.T) {
	calls := 0
	g := func(p vec.Vector) vec.Vector {
		calls++
		if calls == 2 {
			return vec.Of(math.NaN(), 1)
		}
		return paraboloidGrad(p)
	}

	gd, err := optim.NewGradientDescent(vec.Of(1, 1), g, optim.GradientDescentConfig{LR: 0.1})
	require.NoError(t, err)

	path, err := optim.Sample(gd, 6)
	require.NoError(t, err)
	require.Len(t, path, 6)
	assert.True(t, path[1].AllFinite())
	for _, p := range path[2:] {
		assert.True(t, math.IsNaN(p[0]))
	}
}

// TestConstructor_Validation tests construction-time checks.
func TestConstructor_Validation(t *testing.T) {
	for _, k := range optim.Kinds() {
		_, err := optim.New(k, nil, paraboloidGrad, optim.DefaultHyperparameters())
		assert.True(t, errors.Is(err, optim.ErrEmptyStart), string(k))

		_, err = optim.New(k, vec.Of(1, 1), nil, optim.DefaultHyperparameters())
		assert.True(t, errors.Is(err, optim.ErrNilGradient), string(k))
	}

	_, err := optim.New("rmsprop", vec.Of(1, 1), paraboloidGrad, optim.DefaultHyperparameters())
	assert.True(t, errors.Is(err, optim.ErrUnknownKind))
}

// TestParseKind tests kind name resolution.
func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want optim.Kind
	}{
		{"adam", optim.KindAdam},
		{" Nesterov ", optim.KindNesterov},
		{"SGD", optim.KindGradientDescent},
		{"gradient-descent", optim.KindGradientDescent},
		{"adadelta", optim.KindAdadelta},
	}
	for _, tt := range tests {
		got, err := optim.ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := optim.ParseKind("lbfgs")
	assert.True(t, errors.Is(err, optim.ErrUnknownKind))
}

// TestConvergence_Paraboloid tests that the learning-rate driven variants
// minimize x² + y² from (3, -2).
func TestConvergence_Paraboloid(t *testing.T) {
	tests := []struct {
		kind  optim.Kind
		hp    optim.Hyperparameters
		steps int
		tol   float64
	}{
		{optim.KindGradientDescent, optim.Hyperparameters{LR: 0.1}, 100, 1e-3},
		{optim.KindMomentum, optim.Hyperparameters{LR: 0.1, Momentum: 0.9}, 200, 1e-3},
		{optim.KindNesterov, optim.Hyperparameters{LR: 0.1, Momentum: 0.9}, 200, 1e-3},
		{optim.KindAdagrad, optim.Hyperparameters{LR: 0.5}, 200, 1e-3},
		{optim.KindAdam, optim.Hyperparameters{LR: 0.05, Beta1: 0.9, Beta2: 0.999}, 500, 5e-2},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			o, err := optim.New(tt.kind, vec.Of(3, -2), paraboloidGrad, tt.hp)
			require.NoError(t, err)

			path, err := optim.Sample(o, tt.steps)
			require.NoError(t, err)

			final := path[len(path)-1]
			assert.InDelta(t, 0, final[0], tt.tol)
			assert.InDelta(t, 0, final[1], tt.tol)
		})
	}
}
