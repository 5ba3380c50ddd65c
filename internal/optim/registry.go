package optim

import (
	"fmt"
	"strings"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

// Kind names an optimizer variant.
type Kind string

// Supported optimizer kinds.
const (
	KindGradientDescent Kind = "gradient-descent"
	KindMomentum        Kind = "momentum"
	KindNesterov        Kind = "nesterov"
	KindAdagrad         Kind = "adagrad"
	KindAdadelta        Kind = "adadelta"
	KindAdam            Kind = "adam"
)

var kinds = []Kind{
	KindGradientDescent,
	KindMomentum,
	KindNesterov,
	KindAdagrad,
	KindAdadelta,
	KindAdam,
}

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// ParseKind resolves a kind name. Matching ignores case, and "gd"/"sgd" are
// accepted for gradient descent.
func ParseKind(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "gd", "sgd":
		return KindGradientDescent, nil
	}
	for _, k := range kinds {
		if string(k) == n {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Hyperparameters is the union of every variant's settings. Each variant
// reads only its own fields.
type Hyperparameters struct {
	LR        float64 // GradientDescent, Momentum, Nesterov, Adagrad, Adam
	Momentum  float64 // Momentum, Nesterov
	Smoothing float64 // Adadelta
	Beta1     float64 // Adam
	Beta2     float64 // Adam
}

// DefaultHyperparameters returns commonly used settings.
//
// Defaults:
//   - LR: 0.01
//   - Momentum: 0.9
//   - Smoothing: 0.9
//   - Beta1: 0.9
//   - Beta2: 0.999
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		LR:        0.01,
		Momentum:  0.9,
		Smoothing: 0.9,
		Beta1:     0.9,
		Beta2:     0.999,
	}
}

// New builds the optimizer of the given kind.
func New(kind Kind, start vec.Vector, g gradient.Func, hp Hyperparameters) (Optimizer, error) {
	var (
		o   Optimizer
		err error
	)
	switch kind {
	case KindGradientDescent:
		o, err = NewGradientDescent(start, g, GradientDescentConfig{LR: hp.LR})
	case KindMomentum:
		o, err = NewMomentum(start, g, MomentumConfig{LR: hp.LR, Momentum: hp.Momentum})
	case KindNesterov:
		o, err = NewNesterov(start, g, MomentumConfig{LR: hp.LR, Momentum: hp.Momentum})
	case KindAdagrad:
		o, err = NewAdagrad(start, g, AdagradConfig{LR: hp.LR})
	case KindAdadelta:
		o, err = NewAdadelta(start, g, AdadeltaConfig{Smoothing: hp.Smoothing})
	case KindAdam:
		o, err = NewAdam(start, g, AdamConfig{LR: hp.LR, Betas: [2]float64{hp.Beta1, hp.Beta2}})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	return o, nil
}
