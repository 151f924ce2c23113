package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Input attempt results used as the "result" label.
const (
	AttemptAccepted   = "accepted"
	AttemptTokenCount = "token_count"
	AttemptNotNumber  = "not_number"
	AttemptOutOfRange = "out_of_range"
)

// LocatorCollector bundles Prometheus metrics for a locator run.
// A nil *LocatorCollector is valid and records nothing.
type LocatorCollector struct {
	gatherer prometheus.Gatherer

	Runs           *prometheus.CounterVec
	InputAttempts  *prometheus.CounterVec
	StageDurations *prometheus.HistogramVec

	EventsRanked    prometheus.Gauge
	NearestDistance prometheus.Gauge
}

// NewLocatorCollector registers locator metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewLocatorCollector(reg prometheus.Registerer) (*LocatorCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_locator_runs_total",
		Help: "Completed locator runs, labeled by outcome.",
	}, []string{"outcome"}), "event_locator_runs_total")
	if err != nil {
		return nil, err
	}

	attempts, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_locator_input_attempts_total",
		Help: "Coordinate input attempts, labeled by validation result.",
	}, []string{"result"}), "event_locator_input_attempts_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "event_locator_stage_duration_seconds",
		Help:    "Pipeline stage latency in seconds.",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"stage"}), "event_locator_stage_duration_seconds")
	if err != nil {
		return nil, err
	}

	ranked, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "event_locator_events_ranked",
		Help: "Number of events ranked in the last run.",
	}), "event_locator_events_ranked")
	if err != nil {
		return nil, err
	}

	nearest, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "event_locator_nearest_distance",
		Help: "Manhattan distance to the nearest event in the last run.",
	}), "event_locator_nearest_distance")
	if err != nil {
		return nil, err
	}

	return &LocatorCollector{
		gatherer:        gatherer,
		Runs:            runs,
		InputAttempts:   attempts,
		StageDurations:  durations,
		EventsRanked:    ranked,
		NearestDistance: nearest,
	}, nil
}

// RecordAttempt counts one input attempt with the given result label.
func (c *LocatorCollector) RecordAttempt(result string) {
	if c == nil || c.InputAttempts == nil {
		return
	}
	c.InputAttempts.WithLabelValues(result).Inc()
}

// ObserveStage records how long a pipeline stage took.
func (c *LocatorCollector) ObserveStage(stage string, d time.Duration) {
	if c == nil || c.StageDurations == nil {
		return
	}
	c.StageDurations.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordRun counts a finished run.
func (c *LocatorCollector) RecordRun(outcome string) {
	if c == nil || c.Runs == nil {
		return
	}
	c.Runs.WithLabelValues(outcome).Inc()
}

// SetRunSummary sets the per-run gauges.
func (c *LocatorCollector) SetRunSummary(events int, nearestDistance float64) {
	if c == nil {
		return
	}
	if c.EventsRanked != nil {
		c.EventsRanked.Set(float64(events))
	}
	if c.NearestDistance != nil {
		c.NearestDistance.Set(nearestDistance)
	}
}

// WriteTextfile writes every gathered metric to path in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (c *LocatorCollector) WriteTextfile(path string) error {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
