package observability

import (
	"net/http"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors fed by lifecycle hooks.
type Metrics struct {
	Registry *prometheus.Registry

	runs           *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
	runSteps       *prometheus.HistogramVec
	stepsPublished prometheus.Counter
	transitions    *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_runs_total",
				Help: "Total number of algorithm runs",
			},
			[]string{"algorithm", "outcome"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stepwise_run_duration_seconds",
				Help:    "Time spent generating a step list",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"algorithm"},
		),
		runSteps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stepwise_run_steps",
				Help:    "Number of steps recorded per run",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"algorithm"},
		),
		stepsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stepwise_steps_published_total",
			Help: "Total number of steps published by players",
		}),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stepwise_playback_transitions_total",
				Help: "Playback status changes",
			},
			[]string{"from", "to"},
		),
	}
	m.Registry.MustRegister(m.runs, m.runDuration, m.runSteps, m.stepsPublished, m.transitions)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunGenerated: func(e *domain.RunEvent) {
			algo := string(e.Algorithm)
			if e.Err != nil {
				m.runs.WithLabelValues(algo, "error").Inc()
				return
			}
			m.runs.WithLabelValues(algo, "ok").Inc()
			m.runDuration.WithLabelValues(algo).Observe(e.Duration.Seconds())
			m.runSteps.WithLabelValues(algo).Observe(float64(e.Steps))
		},
		OnStepPublished: func(*domain.StepEvent) {
			m.stepsPublished.Inc()
		},
		OnStatusChange: func(e *domain.StatusEvent) {
			m.transitions.WithLabelValues(string(e.From), string(e.To)).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
