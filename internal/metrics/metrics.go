// Package metrics instruments optimizer runs with prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/born-ml/descent/internal/gradient"
	"github.com/born-ml/descent/internal/vec"
)

const namespace = "descent"

// Metrics holds the collectors for one registry.
type Metrics struct {
	GradientEvaluations *prometheus.CounterVec
	Steps               *prometheus.CounterVec
	NonFinite           *prometheus.CounterVec
	TrajectoryDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg creates
// unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GradientEvaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gradient_evaluations_total",
			Help:      "Number of gradient function evaluations.",
		}, []string{"optimizer"}),
		Steps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Number of optimizer steps taken.",
		}, []string{"optimizer"}),
		NonFinite: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "non_finite_trajectories_total",
			Help:      "Number of trajectories that ended on a NaN or infinite point.",
		}, []string{"optimizer"}),
		TrajectoryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trajectory_seconds",
			Help:      "Wall time spent sampling one trajectory.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}, []string{"optimizer"}),
	}
}

// Instrument wraps g so every call is counted under the optimizer label.
func (m *Metrics) Instrument(optimizer string, g gradient.Func) gradient.Func {
	counter := m.GradientEvaluations.WithLabelValues(optimizer)
	return func(p vec.Vector) vec.Vector {
		counter.Inc()
		return g(p)
	}
}

// ObserveTrajectory records a finished trajectory of points visited by the
// optimizer. A trajectory of n points took n-1 steps.
func (m *Metrics) ObserveTrajectory(optimizer string, points []vec.Vector, elapsed time.Duration) {
	if len(points) > 1 {
		m.Steps.WithLabelValues(optimizer).Add(float64(len(points) - 1))
	}
	if len(points) > 0 && !points[len(points)-1].AllFinite() {
		m.NonFinite.WithLabelValues(optimizer).Inc()
	}
	m.TrajectoryDuration.WithLabelValues(optimizer).Observe(elapsed.Seconds())
}
