// Package metrics defines the service metrics contracts and their Prometheus implementations.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records the lifecycle of a service operation.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// CourseMetrics covers course resolution.
type CourseMetrics interface {
	OperationMetrics
	RecordHoleFallback(ctx context.Context, reason string)
}

// RoundMetrics covers the round lifecycle.
type RoundMetrics interface {
	OperationMetrics
	RecordShot(ctx context.Context, club string)
	RecordHoleCompleted(ctx context.Context, grossScore int, stablefordPoints *int)
	RecordRoundCompleted(ctx context.Context, holes int)
	RecordStaleHoleData(ctx context.Context)
}

type operationCollectors struct {
	attempts *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newOperationCollectors(reg prometheus.Registerer, namespace, subsystem string) operationCollectors {
	c := operationCollectors{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation", "service"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_outcomes_total",
			Help:      "Service operations finished, by outcome.",
		}, []string{"operation", "service", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
	}
	reg.MustRegister(c.attempts, c.outcomes, c.duration)
	return c
}

func (c operationCollectors) RecordOperationAttempt(_ context.Context, operation, service string) {
	c.attempts.WithLabelValues(operation, service).Inc()
}

func (c operationCollectors) RecordOperationSuccess(_ context.Context, operation, service string) {
	c.outcomes.WithLabelValues(operation, service, "success").Inc()
}

func (c operationCollectors) RecordOperationFailure(_ context.Context, operation, service string) {
	c.outcomes.WithLabelValues(operation, service, "failure").Inc()
}

func (c operationCollectors) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	c.duration.WithLabelValues(operation, service).Observe(duration.Seconds())
}

// PrometheusCourseMetrics implements CourseMetrics.
type PrometheusCourseMetrics struct {
	operationCollectors
	fallbacks *prometheus.CounterVec
}

// NewCourseMetrics registers the course collectors on reg.
func NewCourseMetrics(reg prometheus.Registerer, namespace string) *PrometheusCourseMetrics {
	m := &PrometheusCourseMetrics{
		operationCollectors: newOperationCollectors(reg, namespace, "course"),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "course",
			Name:      "hole_fallbacks_total",
			Help:      "Holes served from synthetic fallback data.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.fallbacks)
	return m
}

func (m *PrometheusCourseMetrics) RecordHoleFallback(_ context.Context, reason string) {
	m.fallbacks.WithLabelValues(reason).Inc()
}

// PrometheusRoundMetrics implements RoundMetrics.
type PrometheusRoundMetrics struct {
	operationCollectors
	shots      *prometheus.CounterVec
	gross      prometheus.Histogram
	points     prometheus.Histogram
	rounds     prometheus.Counter
	roundHoles prometheus.Histogram
	stale      prometheus.Counter
}

// NewRoundMetrics registers the round collectors on reg.
func NewRoundMetrics(reg prometheus.Registerer, namespace string) *PrometheusRoundMetrics {
	m := &PrometheusRoundMetrics{
		operationCollectors: newOperationCollectors(reg, namespace, "round"),
		shots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "round",
			Name:      "shots_total",
			Help:      "Shots recorded, by club.",
		}, []string{"club"}),
		gross: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "round",
			Name:      "hole_gross_score",
			Help:      "Gross score per completed hole.",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}),
		points: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "round",
			Name:      "hole_stableford_points",
			Help:      "Stableford points per completed hole.",
			Buckets:   prometheus.LinearBuckets(0, 1, 6),
		}),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "round",
			Name:      "completed_total",
			Help:      "Rounds completed.",
		}),
		roundHoles: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "round",
			Name:      "completed_holes",
			Help:      "Holes played per completed round.",
			Buckets:   []float64{9, 18, 27},
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "round",
			Name:      "stale_hole_data_total",
			Help:      "Hole data responses discarded because the round moved on.",
		}),
	}
	reg.MustRegister(m.shots, m.gross, m.points, m.rounds, m.roundHoles, m.stale)
	return m
}

func (m *PrometheusRoundMetrics) RecordShot(_ context.Context, club string) {
	m.shots.WithLabelValues(club).Inc()
}

func (m *PrometheusRoundMetrics) RecordHoleCompleted(_ context.Context, grossScore int, stablefordPoints *int) {
	m.gross.Observe(float64(grossScore))
	if stablefordPoints != nil {
		m.points.Observe(float64(*stablefordPoints))
	}
}

func (m *PrometheusRoundMetrics) RecordRoundCompleted(_ context.Context, holes int) {
	m.rounds.Inc()
	m.roundHoles.Observe(float64(holes))
}

func (m *PrometheusRoundMetrics) RecordStaleHoleData(_ context.Context) {
	m.stale.Inc()
}
