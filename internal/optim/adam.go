package optim

import (
	"math"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// Update rule:
//
//	t = t + 1
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	adam, err := optim.NewAdam(vec.Of(1, 1), g, optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	})
type Adam struct {
	trajectory
	lr    float64
	beta1 float64
	beta2 float64
	t     int        // Timestep for bias correction
	mt    vec.Vector // First moment estimates
	vt    vec.Vector // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate
	Betas [2]float64 // Coefficients for computing running averages, each in [0, 1)
}

// NewAdam creates a new Adam optimizer.
//
// Moments start at zero and the timestep at 0, so the first Step uses t = 1.
// Hyperparameters are used as given.
func NewAdam(start vec.Vector, g gradient.Func, config AdamConfig) (*Adam, error) {
	tr, err := newTrajectory(start, g)
	if err != nil {
		return nil, err
	}
	return &Adam{
		trajectory: tr,
		lr:         config.LR,
		beta1:      config.Betas[0],
		beta2:      config.Betas[1],
		mt:         vec.Zeros(len(start)),
		vt:         vec.Zeros(len(start)),
	}, nil
}

// Step performs a single optimization step using Adam algorithm.
//
//  1. Increment timestep
//  2. Update biased first and second moment estimates
//  3. Compute bias-corrected moment estimates
//  4. Update the point
func (a *Adam) Step() (vec.Vector, error) {
	grad, err := a.evaluate(a.current)
	if err != nil {
		return nil, err
	}

	// Increment timestep
	a.t++

	// bias_correction1 = 1 - beta1^t
	// bias_correction2 = 1 - beta2^t
	biasCorrection1 := 1 - math.Pow(a.beta1, float64(a.t))
	biasCorrection2 := 1 - math.Pow(a.beta2, float64(a.t))

	mt := make(vec.Vector, a.dim())
	vt := make(vec.Vector, a.dim())
	next := make(vec.Vector, a.dim())
	for i, theta := range a.current {
		g := grad[i]

		mt[i] = a.beta1*a.mt[i] + (1-a.beta1)*g
		vt[i] = a.beta2*a.vt[i] + (1-a.beta2)*g*g

		mHat := mt[i] / biasCorrection1
		vHat := vt[i] / biasCorrection2

		next[i] = theta + -a.lr/(math.Sqrt(vHat)+epsilon)*mHat
	}
	a.mt = mt
	a.vt = vt
	return a.advance(next), nil
}

// Name returns the variant name.
func (a *Adam) Name() string {
	return string(KindAdam)
}

// GetLR returns the learning rate.
func (a *Adam) GetLR() float64 {
	return a.lr
}

// GetTimestep returns the current timestep.
//
// Useful for monitoring optimizer state.
func (a *Adam) GetTimestep() int {
	return a.t
}

// Moments returns the bias-corrected first and second moment estimates for
// the current timestep. Before the first step both are zero.
func (a *Adam) Moments() (mHat, vHat vec.Vector) {
	if a.t == 0 {
		return vec.Zeros(a.dim()), vec.Zeros(a.dim())
	}
	mHat = a.mt.Scale(1 / (1 - math.Pow(a.beta1, float64(a.t))))
	vHat = a.vt.Scale(1 / (1 - math.Pow(a.beta2, float64(a.t))))
	return mHat, vHat
}
