package optim

import (
	"gonum.org/v1/gonum/floats"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// Momentum implements gradient descent with classical momentum.
//
// Update rule:
//
//	velocity = momentum * velocity + lr * gradient
//	param = param - velocity
//
// Velocity accumulates across steps and is never reset. A momentum term
// close to 1 keeps the optimizer moving past minima; that overshoot is the
// algorithm, not a defect.
//
// Example:
//
//	m, err := optim.NewMomentum(vec.Of(1, 1), g, optim.MomentumConfig{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type Momentum struct {
	trajectory
	lr       float64
	momentum float64
	vt       vec.Vector // Velocity
}

// MomentumConfig holds configuration for Momentum and Nesterov.
type MomentumConfig struct {
	LR       float64 // Learning rate
	Momentum float64 // Momentum term, usually in [0, 1)
}

// NewMomentum creates a new Momentum optimizer with zero velocity.
func NewMomentum(start vec.Vector, g gradient.Func, config MomentumConfig) (*Momentum, error) {
	tr, err := newTrajectory(start, g)
	if err != nil {
		return nil, err
	}
	return &Momentum{
		trajectory: tr,
		lr:         config.LR,
		momentum:   config.Momentum,
		vt:         vec.Zeros(len(start)),
	}, nil
}

// Step performs a single momentum step with the gradient at the current point.
func (m *Momentum) Step() (vec.Vector, error) {
	grad, err := m.evaluate(m.current)
	if err != nil {
		return nil, err
	}
	next, velocity := momentumUpdate(m.current, m.vt, grad, m.lr, m.momentum)
	m.vt = velocity
	return m.advance(next), nil
}

// Name returns the variant name.
func (m *Momentum) Name() string {
	return string(KindMomentum)
}

// Velocity returns a copy of the current velocity.
func (m *Momentum) Velocity() vec.Vector {
	return m.vt.Clone()
}

// Nesterov implements Nesterov accelerated gradient.
//
// Update rule:
//
//	lookahead = param - momentum * velocity      // previous velocity
//	velocity  = momentum * velocity + lr * gradient(lookahead)
//	param     = param - velocity
//
// The look-ahead point is computed before the velocity changes; that
// ordering is the only difference from Momentum. With zero velocity the
// first step is identical to Momentum's.
type Nesterov struct {
	trajectory
	lr       float64
	momentum float64
	vt       vec.Vector // Velocity
}

// NewNesterov creates a new Nesterov optimizer with zero velocity.
func NewNesterov(start vec.Vector, g gradient.Func, config MomentumConfig) (*Nesterov, error) {
	tr, err := newTrajectory(start, g)
	if err != nil {
		return nil, err
	}
	return &Nesterov{
		trajectory: tr,
		lr:         config.LR,
		momentum:   config.Momentum,
		vt:         vec.Zeros(len(start)),
	}, nil
}

// Step performs a single Nesterov step.
func (n *Nesterov) Step() (vec.Vector, error) {
	lookahead := vec.Vector(floats.AddScaledTo(make([]float64, n.dim()), n.current, -n.momentum, n.vt))

	grad, err := n.evaluate(lookahead)
	if err != nil {
		return nil, err
	}
	next, velocity := momentumUpdate(n.current, n.vt, grad, n.lr, n.momentum)
	n.vt = velocity
	return n.advance(next), nil
}

// Name returns the variant name.
func (n *Nesterov) Name() string {
	return string(KindNesterov)
}

// Velocity returns a copy of the current velocity.
func (n *Nesterov) Velocity() vec.Vector {
	return n.vt.Clone()
}

// momentumUpdate returns the next point and the new velocity computed from
// the previous velocity and the gradient.
func momentumUpdate(current, prev, grad vec.Vector, lr, momentum float64) (next, velocity vec.Vector) {
	velocity = prev.Scale(momentum).AddScaled(lr, grad)
	return current.Sub(velocity), velocity
}
